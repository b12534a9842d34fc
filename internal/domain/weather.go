package domain

import "time"

// RainSample is one point of a rainfall series, in millimetres.
type RainSample struct {
	Label    string  `json:"label"`
	Rainfall float64 `json:"rainfall_mm"`
}

// RainfallReport groups the rainfall series shown for a parcel.
type RainfallReport struct {
	Daily       []RainSample `json:"daily"`
	Monthly     []RainSample `json:"monthly"`
	Annual      []RainSample `json:"annual"`
	Historic    []RainSample `json:"historic"`
	Alert       string       `json:"alert"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// Municipality is an entry of the municipality catalog.
type Municipality struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Province string `json:"province"`
}

// Location is the result of a reverse geocoding lookup.
type Location struct {
	Province     string `json:"province"`
	Municipality string `json:"municipality"`
	Place        string `json:"place"`
}
