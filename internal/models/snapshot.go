// Package models содержит структуры данных, описывающие показания счётчика HomeWizard P1.
// Пакет не содержит бизнес-логику и используется для передачи данных между слоями приложения.
package models

// Snapshot представляет одно полностью декодированное показание счётчика,
// полученное из API устройства (GET /api/v1/data).
// Накопительные поля устройство отдаёт нарастающим итогом; система
// републикует их как есть, без проверки монотонности.
type Snapshot struct {
	// WifiSSID содержит имя Wi-Fi сети, к которой подключён счётчик.
	WifiSSID string `json:"wifi_ssid"`

	// WifiStrength содержит уровень сигнала Wi-Fi в процентах (0–100).
	WifiStrength float64 `json:"wifi_strength"`

	// SMRVersion содержит версию протокола SMR счётчика.
	SMRVersion int `json:"smr_version"`

	// MeterModel содержит модель счётчика электроэнергии.
	MeterModel string `json:"meter_model"`

	// UniqueID содержит идентификатор счётчика электроэнергии.
	UniqueID string `json:"unique_id"`

	// ActiveTariff содержит текущий тариф (1 или 2).
	ActiveTariff int `json:"active_tariff"`

	TotalPowerImportKWh   float64 `json:"total_power_import_kwh"`
	TotalPowerImportT1KWh float64 `json:"total_power_import_t1_kwh"`
	TotalPowerImportT2KWh float64 `json:"total_power_import_t2_kwh"`
	TotalPowerExportKWh   float64 `json:"total_power_export_kwh"`
	TotalPowerExportT1KWh float64 `json:"total_power_export_t1_kwh"`
	TotalPowerExportT2KWh float64 `json:"total_power_export_t2_kwh"`

	// Мгновенные значения, могут быть отрицательными при отдаче в сеть.
	ActivePowerW     float64 `json:"active_power_w"`
	ActivePowerL1W   float64 `json:"active_power_l1_w"`
	ActiveCurrentA   float64 `json:"active_current_a"`
	ActiveCurrentL1A float64 `json:"active_current_l1_a"`

	VoltageSagL1Count   float64 `json:"voltage_sag_l1_count"`
	VoltageSwellL1Count float64 `json:"voltage_swell_l1_count"`
	AnyPowerFailCount   float64 `json:"any_power_fail_count"`
	LongPowerFailCount  float64 `json:"long_power_fail_count"`

	TotalGasM3 float64 `json:"total_gas_m3"`

	// GasTimestamp содержит локальную метку времени газового счётчика.
	// Значение непрозрачное, публикуется без интерпретации.
	GasTimestamp int64 `json:"gas_timestamp"`

	// GasUniqueID содержит идентификатор газового счётчика.
	GasUniqueID string `json:"gas_unique_id"`

	// External содержит показания внешних датчиков. Может быть пустым.
	External []ExternalSensor `json:"external"`
}

// ExternalSensor представляет показание одного внешнего датчика.
// Пара (UniqueID, SensorType) однозначно идентифицирует датчик в снимке.
type ExternalSensor struct {
	UniqueID string `json:"unique_id"`

	// SensorType в JSON передаётся под ключом "type".
	SensorType string `json:"type"`

	Timestamp int64   `json:"timestamp"`
	Value     float64 `json:"value"`
	Unit      string  `json:"unit"`
}

// Reset обнуляет снимок, сохраняя ёмкость слайса External.
// Используется пулом объектов между циклами опроса.
func (s *Snapshot) Reset() {
	external := s.External[:0]
	*s = Snapshot{}
	s.External = external
}
