// Package registry содержит реестр метрик экспортера с фиксированной схемой.
// Реестр хранит ровно одно текущее значение на объявленный ряд,
// перезаписывается целиком методом Apply и сериализуется методом Render
// в текстовый формат экспозиции (version 0.0.4).
package registry

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/levinOo/homewizard-p1-exporter/internal/models"
)

// Типы метрик в терминах формата экспозиции.
const (
	KindCounter = "counter"
	KindGauge   = "gauge"
)

// series — один именованный ряд, умеющий выписать себя в документ экспозиции.
// Все вызовы write выполняются под мьютексом реестра.
type series interface {
	write(sb *strings.Builder)
}

// --------------------- scalar ---------------------

// scalar хранит одно безлейбловое значение (counter или gauge).
type scalar struct {
	name string
	help string
	kind string
	val  float64
}

func newScalar(name, help, kind string) *scalar {
	return &scalar{name: name, help: help, kind: kind}
}

func (s *scalar) reset() {
	s.val = 0
}

func (s *scalar) add(v float64) {
	s.val += v
}

func (s *scalar) set(v float64) {
	s.val = v
}

func (s *scalar) write(sb *strings.Builder) {
	writeHeader(sb, s.name, s.help, s.kind)
	sb.WriteString(s.name)
	sb.WriteByte(' ')
	sb.WriteString(formatValue(s.val))
	sb.WriteByte('\n')
}

// --------------------- vec ---------------------

// vec хранит значения по кортежам лейблов. Пустой vec не выписывает
// ни заголовков, ни сэмплов: исчезнувший из снимка кортеж исчезает
// и из следующего scrape.
type vec struct {
	name    string
	help    string
	kind    string
	keys    []string
	samples map[string]vecSample
}

type vecSample struct {
	values []string
	val    float64
}

func newVec(name, help, kind string, keys ...string) *vec {
	return &vec{
		name:    name,
		help:    help,
		kind:    kind,
		keys:    keys,
		samples: make(map[string]vecSample),
	}
}

func (v *vec) reset() {
	clear(v.samples)
}

// set перезаписывает значение кортежа. Повторный кортеж в одном снимке
// схлопывается: последний выигрывает.
func (v *vec) set(val float64, labelValues ...string) {
	v.samples[strings.Join(labelValues, "\xff")] = vecSample{values: labelValues, val: val}
}

func (v *vec) add(val float64, labelValues ...string) {
	key := strings.Join(labelValues, "\xff")
	s, ok := v.samples[key]
	if !ok {
		s = vecSample{values: labelValues}
	}
	s.val += val
	v.samples[key] = s
}

func (v *vec) write(sb *strings.Builder) {
	if len(v.samples) == 0 {
		return
	}

	writeHeader(sb, v.name, v.help, v.kind)

	keys := make([]string, 0, len(v.samples))
	for k := range v.samples {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		s := v.samples[k]
		sb.WriteString(v.name)
		sb.WriteByte('{')
		for i, labelKey := range v.keys {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(labelKey)
			sb.WriteString(`="`)
			sb.WriteString(escapeLabelValue(s.values[i]))
			sb.WriteByte('"')
		}
		sb.WriteString("} ")
		sb.WriteString(formatValue(s.val))
		sb.WriteByte('\n')
	}
}

// --------------------- Registry ---------------------

// Registry — реестр всех рядов экспортера. Единственный разделяемый
// изменяемый ресурс процесса: Apply и Render сериализуются одним мьютексом,
// поэтому scrape никогда не видит наполовину применённый снимок.
type Registry struct {
	mu sync.Mutex

	powerImportTotal  *scalar
	powerImportTariff *vec
	powerExportTotal  *scalar
	powerExportTariff *vec

	activePower     *scalar
	activePowerL1   *scalar
	activeCurrent   *scalar
	activeCurrentL1 *scalar
	activeTariff    *scalar

	gasTotal     *scalar
	gasTimestamp *scalar
	gasMeterInfo *vec

	wifiStrength *scalar

	voltageSagCount   *scalar
	voltageSwellCount *scalar
	powerFailuresAny  *scalar
	powerFailuresLong *scalar

	meterInfo *vec

	externalSensorValue     *vec
	externalSensorTimestamp *vec

	// series хранит ряды в порядке объявления; Render обходит их в этом порядке.
	series []series
}

// NewRegistry создаёт реестр со всеми объявленными рядами.
// До первого успешного Apply скалярные ряды публикуются со значением 0,
// а лейбловые ряды не публикуются вовсе.
func NewRegistry() *Registry {
	r := &Registry{
		powerImportTotal:  newScalar("homewizard_p1_power_import_total_kwh", "Total power imported in kWh", KindCounter),
		powerImportTariff: newVec("homewizard_p1_power_import_tariff_kwh", "Power imported per tariff in kWh", KindCounter, "tariff"),
		powerExportTotal:  newScalar("homewizard_p1_power_export_total_kwh", "Total power exported in kWh", KindCounter),
		powerExportTariff: newVec("homewizard_p1_power_export_tariff_kwh", "Power exported per tariff in kWh", KindCounter, "tariff"),

		activePower:     newScalar("homewizard_p1_active_power_watts", "Current active power in watts", KindGauge),
		activePowerL1:   newScalar("homewizard_p1_active_power_l1_watts", "Current active power L1 in watts", KindGauge),
		activeCurrent:   newScalar("homewizard_p1_active_current_amperes", "Current active current in amperes", KindGauge),
		activeCurrentL1: newScalar("homewizard_p1_active_current_l1_amperes", "Current active current L1 in amperes", KindGauge),
		activeTariff:    newScalar("homewizard_p1_active_tariff", "Currently active tariff (1 or 2)", KindGauge),

		gasTotal:     newScalar("homewizard_p1_gas_total_m3", "Total gas consumption in m3", KindCounter),
		gasTimestamp: newScalar("homewizard_p1_gas_timestamp", "Timestamp of last gas meter reading", KindGauge),
		gasMeterInfo: newVec("homewizard_p1_gas_meter_info", "Gas meter information", KindGauge, "unique_id"),

		wifiStrength: newScalar("homewizard_p1_wifi_strength_percent", "WiFi signal strength percentage", KindGauge),

		voltageSagCount:   newScalar("homewizard_p1_voltage_sag_count_total", "Total voltage sag events", KindCounter),
		voltageSwellCount: newScalar("homewizard_p1_voltage_swell_count_total", "Total voltage swell events", KindCounter),
		powerFailuresAny:  newScalar("homewizard_p1_power_failures_any_total", "Total power failures (any duration)", KindCounter),
		powerFailuresLong: newScalar("homewizard_p1_power_failures_long_total", "Total long power failures", KindCounter),

		meterInfo: newVec("homewizard_p1_meter_info", "Meter information", KindGauge, "meter_id", "meter_model", "smr_version", "wifi_ssid"),

		externalSensorValue:     newVec("homewizard_p1_external_sensor_value", "External sensor value", KindGauge, "unique_id", "type", "unit"),
		externalSensorTimestamp: newVec("homewizard_p1_external_sensor_timestamp", "External sensor timestamp", KindGauge, "unique_id", "type"),
	}

	r.series = []series{
		r.powerImportTotal,
		r.powerImportTariff,
		r.powerExportTotal,
		r.powerExportTariff,
		r.activePower,
		r.activePowerL1,
		r.activeCurrent,
		r.activeCurrentL1,
		r.activeTariff,
		r.gasTotal,
		r.gasTimestamp,
		r.gasMeterInfo,
		r.wifiStrength,
		r.voltageSagCount,
		r.voltageSwellCount,
		r.powerFailuresAny,
		r.powerFailuresLong,
		r.meterInfo,
		r.externalSensorValue,
		r.externalSensorTimestamp,
	}

	return r
}

// Apply перезаписывает состояние реестра из снимка.
// Счётчики обновляются парой reset+add, чтобы опубликованное значение
// совпадало с накопительным показанием устройства. Лейбловые ряды
// полностью очищаются и наполняются заново: устаревшие кортежи не живут
// дольше одного снимка.
func (r *Registry) Apply(snap *models.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.powerImportTotal.reset()
	r.powerImportTotal.add(snap.TotalPowerImportKWh)

	r.powerImportTariff.reset()
	r.powerImportTariff.add(snap.TotalPowerImportT1KWh, "1")
	r.powerImportTariff.add(snap.TotalPowerImportT2KWh, "2")

	r.powerExportTotal.reset()
	r.powerExportTotal.add(snap.TotalPowerExportKWh)

	r.powerExportTariff.reset()
	r.powerExportTariff.add(snap.TotalPowerExportT1KWh, "1")
	r.powerExportTariff.add(snap.TotalPowerExportT2KWh, "2")

	r.activePower.set(snap.ActivePowerW)
	r.activePowerL1.set(snap.ActivePowerL1W)
	r.activeCurrent.set(snap.ActiveCurrentA)
	r.activeCurrentL1.set(snap.ActiveCurrentL1A)
	r.activeTariff.set(float64(snap.ActiveTariff))

	r.gasTotal.reset()
	r.gasTotal.add(snap.TotalGasM3)

	r.gasTimestamp.set(float64(snap.GasTimestamp))

	r.gasMeterInfo.reset()
	r.gasMeterInfo.set(1, snap.GasUniqueID)

	r.wifiStrength.set(snap.WifiStrength)

	r.voltageSagCount.reset()
	r.voltageSagCount.add(snap.VoltageSagL1Count)

	r.voltageSwellCount.reset()
	r.voltageSwellCount.add(snap.VoltageSwellL1Count)

	r.powerFailuresAny.reset()
	r.powerFailuresAny.add(snap.AnyPowerFailCount)

	r.powerFailuresLong.reset()
	r.powerFailuresLong.add(snap.LongPowerFailCount)

	r.meterInfo.reset()
	r.meterInfo.set(1, snap.UniqueID, snap.MeterModel, strconv.Itoa(snap.SMRVersion), snap.WifiSSID)

	r.externalSensorValue.reset()
	r.externalSensorTimestamp.reset()
	for _, sensor := range snap.External {
		r.externalSensorValue.set(sensor.Value, sensor.UniqueID, sensor.SensorType, sensor.Unit)
		r.externalSensorTimestamp.set(float64(sensor.Timestamp), sensor.UniqueID, sensor.SensorType)
	}
}

// Render сериализует текущее состояние реестра в текстовый формат экспозиции.
// Вывод детерминирован: ряды идут в порядке объявления, кортежи лейблов
// отсортированы. Повторный Render без Apply между ними байт-в-байт совпадает.
func (r *Registry) Render() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var sb strings.Builder
	for _, s := range r.series {
		s.write(&sb)
	}
	return sb.String()
}

// --------------------- форматирование ---------------------

func writeHeader(sb *strings.Builder, name, help, kind string) {
	sb.WriteString("# HELP ")
	sb.WriteString(name)
	sb.WriteByte(' ')
	sb.WriteString(escapeHelp(help))
	sb.WriteByte('\n')
	sb.WriteString("# TYPE ")
	sb.WriteString(name)
	sb.WriteByte(' ')
	sb.WriteString(kind)
	sb.WriteByte('\n')
}

// formatValue печатает значение по конвенции формата экспозиции:
// целые значения без десятичной точки, дробные — с минимальной
// точностью, достаточной для обратного преобразования.
func formatValue(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	case math.IsNaN(v):
		return "NaN"
	case v == math.Trunc(v) && math.Abs(v) < 1e15:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
}

// escapeLabelValue экранирует значение лейбла: обратный слэш,
// двойная кавычка и перевод строки. UTF-8 проходит как есть.
func escapeLabelValue(v string) string {
	if !strings.ContainsAny(v, "\\\"\n") {
		return v
	}

	var sb strings.Builder
	for _, r := range v {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func escapeHelp(v string) string {
	if !strings.ContainsAny(v, "\\\n") {
		return v
	}

	var sb strings.Builder
	for _, r := range v {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
