package models

// HostInfo holds OS details of the monitored host
type HostInfo struct {
	Hostname        string `json:"hostname"`
	OS              string `json:"os"`
	Platform        string `json:"platform"`
	PlatformVersion string `json:"platform_version"`
	Kernel          string `json:"kernel"`
	Arch            string `json:"arch"`
	Uptime          uint64 `json:"uptime"`
	Cores           int    `json:"cores"`
}
