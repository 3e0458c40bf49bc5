// Package numbering define el formato de los consecutivos de transacciones:
// <PREFIJO><AAAAMMDD><secuencia de 4 dígitos>, reiniciado cada día por prefijo.
package numbering

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Prefijos por tipo de transacción.
const (
	PrefixIncoming   = "IN"
	PrefixProduction = "PR"
	PrefixInvoice    = "INV"
)

// MaxSequence es el último consecutivo representable con 4 dígitos.
const MaxSequence = 9999

const dayLayout = "20060102"

// ErrSequenceExhausted se produce al superar MaxSequence en un día para un prefijo.
var ErrSequenceExhausted = errors.New("numbering: secuencia diaria agotada")

// Day devuelve la parte de fecha (AAAAMMDD) usada en el número.
func Day(t time.Time) string {
	return t.Format(dayLayout)
}

// DayPrefix devuelve <PREFIJO><AAAAMMDD>, el prefijo común a todos los números del día.
func DayPrefix(prefix string, t time.Time) string {
	return prefix + Day(t)
}

// Format construye el número completo. seq debe estar en [1, MaxSequence].
func Format(prefix string, t time.Time, seq int) (string, error) {
	if seq < 1 || seq > MaxSequence {
		return "", ErrSequenceExhausted
	}
	return fmt.Sprintf("%s%04d", DayPrefix(prefix, t), seq), nil
}

// ParseSequence extrae la secuencia de number si pertenece al día/prefijo indicado.
// ok es false si el número es de otro día, otro prefijo o no termina en 4 dígitos.
func ParseSequence(number, prefix string, t time.Time) (seq int, ok bool) {
	dp := DayPrefix(prefix, t)
	if !strings.HasPrefix(number, dp) {
		return 0, false
	}
	rest := number[len(dp):]
	if len(rest) != 4 {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// NextFromLast calcula el siguiente número a partir del último existente del día
// (el lexicográficamente mayor con ese prefijo). last vacío o ajeno al día arranca en 0001.
func NextFromLast(last, prefix string, t time.Time) (string, error) {
	seq := 0
	if n, ok := ParseSequence(last, prefix, t); ok {
		seq = n
	}
	return Format(prefix, t, seq+1)
}

// Split separa un número con el formato del prefijo en su día (AAAAMMDD) y su secuencia.
// ok es false para números libres (p. ej. "IN-LEGACY-1") o de otro prefijo.
func Split(number, prefix string) (day string, seq int, ok bool) {
	if !strings.HasPrefix(number, prefix) {
		return "", 0, false
	}
	rest := number[len(prefix):]
	if len(rest) != len(dayLayout)+4 {
		return "", 0, false
	}
	day = rest[:len(dayLayout)]
	if _, err := time.Parse(dayLayout, day); err != nil {
		return "", 0, false
	}
	for _, r := range rest[len(dayLayout):] {
		if r < '0' || r > '9' {
			return "", 0, false
		}
	}
	seq, _ = strconv.Atoi(rest[len(dayLayout):])
	return day, seq, true
}
