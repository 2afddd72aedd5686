package model

import "time"

// KPIMdtRow is one day of mean-dock-time reporting for a station.
type KPIMdtRow struct {
	Date        time.Time `json:"date"`
	Region      *string   `json:"region"`
	StationName *string   `json:"station_name"`
	MdtMinutes  *float64  `json:"mdt_minutes"`
	Trips       *int      `json:"trips"`
}

// KPIIntradayRow is one intraday volume sample for a station.
type KPIIntradayRow struct {
	Date        time.Time `json:"date"`
	Timestamp   time.Time `json:"timestamp"`
	Region      *string   `json:"region"`
	StationName *string   `json:"station_name"`
	Volume      *int      `json:"volume"`
}
