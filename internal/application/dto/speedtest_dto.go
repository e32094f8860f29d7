package dto

// SpeedTestResponse resultado del test de velocidad (mismos campos que consume static/script.js).
type SpeedTestResponse struct {
	Download float64 `json:"download"` // Mbit/s, 2 decimales
	Upload   float64 `json:"upload"`   // Mbit/s, 2 decimales
	Ping     float64 `json:"ping"`     // ms
}

// SpeedTestError cuerpo de error de /run-speedtest.
type SpeedTestError struct {
	Error string `json:"error"`
}
