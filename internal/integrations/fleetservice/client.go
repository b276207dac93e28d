package fleetservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с FleetService (справочник транспорта и персонала)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента FleetService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetVehicle получает транспорт по ID
func (c *Client) GetVehicle(ctx context.Context, vehicleID int64) (*Vehicle, error) {
	url := fmt.Sprintf("%s/internal/vehicles/%d", c.baseURL, vehicleID)

	var vehicle Vehicle
	if err := c.getJSON(ctx, url, &vehicle, ErrVehicleNotFound); err != nil {
		return nil, err
	}

	return &vehicle, nil
}

// GetStaffMember получает сотрудника по ID
func (c *Client) GetStaffMember(ctx context.Context, staffID int64) (*StaffMember, error) {
	url := fmt.Sprintf("%s/internal/staff/%d", c.baseURL, staffID)

	var staff StaffMember
	if err := c.getJSON(ctx, url, &staff, ErrStaffNotFound); err != nil {
		return nil, err
	}

	return &staff, nil
}

// CheckVehicleExists проверяет существование транспорта с graceful degradation
// При недоступности FleetService возвращает ErrServiceDegraded -
// справочная проверка пропускается, операция не блокируется
func (c *Client) CheckVehicleExists(ctx context.Context, vehicleID int64) error {
	_, err := c.GetVehicle(ctx, vehicleID)
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrVehicleNotFound) {
		return ErrVehicleNotFound
	}
	c.log.Error("FleetService unavailable, applying graceful degradation for vehicle check: %v", err)
	return fmt.Errorf("%w: vehicle check skipped: %v", ErrServiceDegraded, err)
}

// CheckStaffExist проверяет существование сотрудников с graceful degradation
// Возвращает первый отсутствующий id. При недоступности FleetService
// возвращает ErrServiceDegraded - справочная проверка пропускается,
// массовая операция не блокируется
func (c *Client) CheckStaffExist(ctx context.Context, staffIDs []int64) (int64, error) {
	for _, id := range staffIDs {
		_, err := c.GetStaffMember(ctx, id)
		if err == nil {
			continue
		}
		if errors.Is(err, ErrStaffNotFound) {
			return id, ErrStaffNotFound
		}
		c.log.Error("FleetService unavailable, applying graceful degradation for staff check: %v", err)
		return 0, fmt.Errorf("%w: staff check skipped: %v", ErrServiceDegraded, err)
	}
	return 0, nil
}

// getJSON выполняет GET запрос и декодирует JSON ответ
func (c *Client) getJSON(ctx context.Context, url string, dest interface{}, notFound error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return notFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
