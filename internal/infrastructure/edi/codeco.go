package edi

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Patio-api/internal/domain/entity"
	"github.com/jhoicas/Patio-api/pkg/logger"
)

// Movement describe una entrada o salida de contenedor a reportar vía CODECO.
type Movement struct {
	ContainerNumber    string
	ContainerSize      string // "20ft" o "40ft"
	ContainerType      string // dry, empty, full, reefer, tank, flat_rack, open_top
	Customer           string
	Receiver           string
	BookingReference   string
	EquipmentReference string
	LocationCode       string
	LocationDetails    string
	OperationTime      time.Time
}

// containerTypeCodes códigos ISO de tipo de equipo por nombre descriptivo.
var containerTypeCodes = map[string]string{
	"dry":       "EM",
	"empty":     "EM",
	"full":      "FL",
	"reefer":    "RE",
	"tank":      "TK",
	"flat_rack": "FR",
	"open_top":  "OT",
}

// Generator arma mensajes CODECO (EDIFACT D:95B ITG14) para los clientes del patio.
// El reloj es inyectable para que las referencias de mensaje sean deterministas en tests.
type Generator struct {
	sender          string
	defaultReceiver string
	now             func() time.Time
	log             *logger.Logger
}

func NewGenerator(sender string, log *logger.Logger) *Generator {
	return &Generator{sender: sender, now: time.Now, log: log}
}

// WithDefaultReceiver fija el receptor a usar cuando el movimiento no trae
// ni receptor ni cliente.
func (g *Generator) WithDefaultReceiver(receiver string) *Generator {
	g.defaultReceiver = receiver
	return g
}

// WithClock reemplaza la fuente de tiempo. Solo para tests.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate produce el intercambio EDIFACT completo en una sola línea, cada
// segmento terminado en apóstrofo. La cuenta del UNT incluye UNH..UNT y
// excluye la envolvente UNB/UNZ.
func (g *Generator) Generate(m Movement) (string, error) {
	if m.ContainerNumber == "" {
		return "", fmt.Errorf("codeco: número de contenedor requerido")
	}
	now := g.now().UTC()

	// Referencia de mensaje: COD + MMDDHHMM. Referencia de control: emisor + MMDD.
	stamp := now.Format("01021504")
	msgRef := "COD" + stamp
	controlRef := g.sender + now.Format("0102")

	receiver := m.Receiver
	if receiver == "" {
		receiver = m.Customer
	}
	if receiver == "" {
		receiver = g.defaultReceiver
	}

	var segments []string
	segments = append(segments,
		fmt.Sprintf("UNB+UNOA:1+%s+%s+%s:%s+%s'", g.sender, receiver, now.Format("060102"), now.Format("1504"), controlRef),
	)
	segments = append(segments, fmt.Sprintf("UNH+%s+CODECO:D:95B:UN:ITG14'", msgRef))
	segments = append(segments, fmt.Sprintf("BGM+36+%s%s+9'", m.ContainerNumber, stamp))
	segments = append(segments, "FTX+AAI'")
	segments = append(segments, "TDT+1++3+31'")
	segments = append(segments, fmt.Sprintf("NAD+MS+%s'", g.sender))
	segments = append(segments, fmt.Sprintf("NAD+CF+%s:160:20'", receiver))
	segments = append(segments, fmt.Sprintf("EQD+CN+%s+%s:102:5+++4'", m.ContainerNumber, sizeTypeCode(m.ContainerSize, m.ContainerType)))

	if m.BookingReference != "" {
		segments = append(segments, fmt.Sprintf("RFF+BN:%s'", m.BookingReference))
	}
	// La referencia de equipo solo aplica al cliente ONEY.
	if m.EquipmentReference != "" && strings.Contains(strings.ToUpper(m.Customer), "ONEY") {
		segments = append(segments, fmt.Sprintf("RFF+EQR:%s'", m.EquipmentReference))
	}

	opTime := m.OperationTime
	if opTime.IsZero() {
		opTime = now
	}
	segments = append(segments, fmt.Sprintf("DTM+203:%s:203'", opTime.UTC().Format("20060102150405")))
	segments = append(segments, fmt.Sprintf("LOC+165+%s:139:6+%s'", locationCode(m), locationDetails(m)))
	segments = append(segments, "CNT+16:1'")

	// UNT cuenta los segmentos del mensaje, sin la envolvente UNB.
	segments = append(segments, fmt.Sprintf("UNT+%d+%s'", len(segments), msgRef))
	segments = append(segments, fmt.Sprintf("UNZ+1+%s'", controlRef))

	edi := strings.Join(segments, "")
	if g.log != nil {
		g.log.Debug().
			Str("container", m.ContainerNumber).
			Str("message_ref", msgRef).
			Int("segments", len(segments)).
			Msg("mensaje CODECO generado")
	}
	return edi, nil
}

// sizeTypeCode compone tamaño+tipo ISO, p. ej. "40EM". El tamaño llega como
// "20ft"/"40ft" y se reduce a sus dígitos.
func sizeTypeCode(size, containerType string) string {
	digits := strings.TrimSuffix(size, "ft")
	if digits == "" {
		digits = strings.TrimSuffix(entity.Size40, "ft")
	}
	code, ok := containerTypeCodes[strings.ToLower(containerType)]
	if !ok {
		code = strings.ToUpper(containerType)
		if code == "" {
			code = "EM"
		}
	}
	return digits + code
}

func locationCode(m Movement) string {
	// Un UUID no es un código UN/LOCODE; caer al código por defecto.
	if m.LocationCode == "" || (strings.Contains(m.LocationCode, "-") && len(m.LocationCode) > 20) {
		return "CIABJ"
	}
	return m.LocationCode
}

func locationDetails(m Movement) string {
	upper := strings.ToUpper(m.Customer + " " + m.Receiver)
	switch {
	case strings.Contains(upper, "PIL"):
		return "CIABJ31:STO:ZZZ"
	case strings.Contains(upper, "ONEY"):
		return "CIABJ32:STO:ZZZ"
	case m.LocationDetails != "":
		return m.LocationDetails
	default:
		return "CIABJ32:STO:ZZZ"
	}
}
