package fleetservice

// Vehicle модель транспорта из FleetService
type Vehicle struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Plate    string `json:"plate"`
	Capacity int    `json:"capacity"`
	Active   bool   `json:"active"`
}

// StaffMember модель сотрудника (гид/водитель) из FleetService
type StaffMember struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"` // guide | driver
	Active bool   `json:"active"`
}

// ErrorResponse модель ошибки от FleetService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
