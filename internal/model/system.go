package model

// VersionInfo is the body of GET /api/system/version. DbVersion is the last applied
// migration and Store names the snapshot store driver.
type VersionInfo struct {
	AppVersion string          `json:"app_version"`
	DbVersion  string          `json:"db_version"`
	Store      string          `json:"store"`
	Features   map[string]bool `json:"features"`
}
