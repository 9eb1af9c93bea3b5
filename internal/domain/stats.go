package domain

// AlertStats is the aggregator result. All facets are computed against one
// captured "now" so the active and recent windows cannot skew apart.
type AlertStats struct {
	TotalAlerts      int64                   `json:"total_alerts"`
	ActiveAlerts     int64                   `json:"active_alerts"`
	AlertsByType     map[AlertType]int64     `json:"alerts_by_type"`
	AlertsBySeverity map[AlertSeverity]int64 `json:"alerts_by_severity"`
	RecentAlerts     int64                   `json:"recent_alerts"`
}
