package model

// VersionInfo describes the running application and the applied schema version.
type VersionInfo struct {
	AppVersion string          `json:"appVersion"`
	DbVersion  int64           `json:"dbVersion"`
	Features   map[string]bool `json:"features"`
}
