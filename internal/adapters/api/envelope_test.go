package api

import "testing"

type rec struct {
	ID string `json:"_id"`
}

func TestUnwrapOne_Order(t *testing.T) {
	cases := map[string]string{
		`{"data":{"room":{"_id":"a"},"doc":{"_id":"b"}}}`: "a",
		`{"data":{"doc":{"_id":"b"}},"doc":{"_id":"c"}}`:  "b",
		`{"doc":{"_id":"c"},"data":{"_id":"d"}}`:          "c",
		`{"status":"success","data":{"_id":"d"}}`:         "d",
		`{"_id":"e","number":3}`:                          "e",
	}
	for body, want := range cases {
		got, err := unwrapOne[rec]([]byte(body), "room")
		if err != nil || got.ID != want {
			t.Errorf("%s: got %+v err=%v, want %s", body, got, err, want)
		}
	}
}

func TestUnwrapList_MissingIsEmpty(t *testing.T) {
	got, err := unwrapList[rec]([]byte(`{"status":"success"}`), "rooms")
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("got %v err=%v", got, err)
	}
	got, err = unwrapList[rec]([]byte(`[{"_id":"x"}]`), "rooms")
	if err != nil || len(got) != 1 {
		t.Fatalf("bare list: got %v err=%v", got, err)
	}
}

func TestUnwrapOne_Empty(t *testing.T) {
	if _, err := unwrapOne[rec]([]byte(`{"data":null}`), "room"); err != ErrEmptyPayload {
		t.Fatalf("want ErrEmptyPayload, got %v", err)
	}
}
