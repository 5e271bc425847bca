package identity

// LoginRequest identifies the device and application logging in. The client
// passes it through to the identity service without inspecting it.
type LoginRequest struct {
	DeviceID string `json:"device_id"`
	AppID    string `json:"app_id"`
}

// LoginResponse carries the API token granted for the device/application
// pair.
type LoginResponse struct {
	Token string `json:"token"`
}
