package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/petpalid/petcare-app/models"
)

// Kode pendek per service kind untuk nomor invoice.
var invoiceCodes = map[string]string{
	models.KindClinicBooking: "CLN",
	models.KindHouseCall:     "HCL",
	models.KindConsultation:  "CSL",
	models.KindPetHotel:      "HTL",
	models.KindProductCart:   "STR",
}

// GenerateInvoice membuat nomor invoice unik dan human-readable,
// mis. "INV/20260901/CLN/1A2B3C4D". Fragmen uuid menjamin keunikan tanpa
// perlu counter di database.
func GenerateInvoice(serviceKind string, at time.Time) string {
	code, ok := invoiceCodes[serviceKind]
	if !ok {
		code = "ORD"
	}
	frag := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("INV/%s/%s/%s", at.Format("20060102"), code, frag)
}
