package inventory

import (
	"fmt"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

var prefixes = map[entity.DocumentKind]string{
	entity.KindGoodsReceipt:  "GR",
	entity.KindGoodsIssue:    "GI",
	entity.KindInventory:     "INV",
	entity.KindStorageReport: "SR",
}

// Prefix prefijo de numeración del tipo de documento.
func Prefix(kind entity.DocumentKind) (string, error) {
	p, ok := prefixes[kind]
	if !ok {
		return "", domain.NewNotFound("tipo de documento", kind)
	}
	return p, nil
}

// NumberDay día UTC al que pertenece un número creado en t.
func NumberDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatNumber arma {prefijo}-{AAAAMMDD}-{consecutivo de 3 dígitos}.
func FormatNumber(prefix string, day time.Time, seq int) string {
	return fmt.Sprintf("%s-%s-%03d", prefix, day.UTC().Format("20060102"), seq)
}
