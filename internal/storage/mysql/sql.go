package mysql

const createClientStorageSQL = `
CREATE TABLE IF NOT EXISTS client_storage (
  origin     VARCHAR(64)  NOT NULL,
  k          VARCHAR(128) NOT NULL,
  v          MEDIUMTEXT   NOT NULL,
  expires_at DATETIME(3)  NULL,
  updated_at TIMESTAMP(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3) ON UPDATE CURRENT_TIMESTAMP(3),
  PRIMARY KEY (origin, k),
  KEY idx_client_storage_expires (expires_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4
`

// Expired rows are invisible to reads and swept by Purge.
const getValueSQL = `
SELECT v
FROM client_storage
WHERE origin = ? AND k = ?
  AND (expires_at IS NULL OR expires_at > UTC_TIMESTAMP(3))
`

const upsertValueSQL = `
INSERT INTO client_storage (origin, k, v, expires_at)
VALUES (?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  v          = VALUES(v),
  expires_at = VALUES(expires_at)
`

const deleteValuePrefix = "DELETE FROM client_storage WHERE origin = ? AND k IN "

const purgeExpiredSQL = `
DELETE FROM client_storage
WHERE expires_at IS NOT NULL AND expires_at <= UTC_TIMESTAMP(3)
`
