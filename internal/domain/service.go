package domain

import "time"

type ServiceCategory string

const (
	ServiceHousekeeping ServiceCategory = "housekeeping"
	ServiceRoomService  ServiceCategory = "room-service"
	ServiceMaintenance  ServiceCategory = "maintenance"
	ServiceConcierge    ServiceCategory = "concierge"
	ServiceOther        ServiceCategory = "other"
)

var serviceCategoryNames = map[ServiceCategory]string{
	ServiceHousekeeping: "Housekeeping",
	ServiceRoomService:  "Room Service",
	ServiceMaintenance:  "Maintenance",
	ServiceConcierge:    "Concierge",
	ServiceOther:        "Other",
}

func (c ServiceCategory) Valid() bool {
	_, ok := serviceCategoryNames[c]
	return ok
}

func (c ServiceCategory) Label() string {
	if n, ok := serviceCategoryNames[c]; ok {
		return n
	}
	return string(c)
}

const DefaultServiceDuration = 30

type Service struct {
	ID                string          `json:"_id"`
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	Category          ServiceCategory `json:"category"`
	EstimatedDuration int             `json:"estimatedDuration,omitempty"` // minutes
	Active            bool            `json:"active"`
	CreatedAt         string          `json:"createdAt,omitempty"`
	UpdatedAt         string          `json:"updatedAt,omitempty"`
}

// Duration falls back to DefaultServiceDuration when the API omits it.
func (s Service) Duration() time.Duration {
	m := s.EstimatedDuration
	if m <= 0 {
		m = DefaultServiceDuration
	}
	return time.Duration(m) * time.Minute
}

type CreateServiceInput struct {
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	Category          ServiceCategory `json:"category"`
	EstimatedDuration int             `json:"estimatedDuration,omitempty"`
	Active            *bool           `json:"active,omitempty"`
}

type UpdateServiceInput struct {
	Name              *string          `json:"name,omitempty"`
	Description       *string          `json:"description,omitempty"`
	Category          *ServiceCategory `json:"category,omitempty"`
	EstimatedDuration *int             `json:"estimatedDuration,omitempty"`
	Active            *bool            `json:"active,omitempty"`
}

type ServiceRef struct {
	Name     string          `json:"name,omitempty"`
	Category ServiceCategory `json:"category,omitempty"`
}

type ServiceRequest struct {
	ID          string      `json:"_id"`
	Type        string      `json:"type,omitempty"`
	Description string      `json:"description"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	Service     *ServiceRef `json:"service,omitempty"`
}

func (r ServiceRequest) ServiceName() string {
	switch {
	case r.Service != nil && r.Service.Name != "":
		return r.Service.Name
	case r.Type != "":
		return r.Type
	default:
		return "Service"
	}
}

func (r ServiceRequest) DescriptionOrDefault() string {
	if r.Description == "" {
		return "No description"
	}
	return r.Description
}

func (r ServiceRequest) Completed() bool { return r.Status == "completed" }
