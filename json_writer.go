package portfolio

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

// jsonObjectWriter builds a JSON object keeping the order in which fields are
// appended. Its zero value is ready to use.
type jsonObjectWriter struct {
	bytes.Buffer
	err error
}

// Append adds a key-value pair. The first marshaling error is kept and
// reported by MarshalJSON; later calls are ignored.
func (w *jsonObjectWriter) Append(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	val, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("marshaling %q: %w", key, err)
		return w
	}
	k, _ := json.Marshal(key)
	if w.Len() > 0 {
		w.WriteByte(',')
	}
	w.Write(k)
	w.WriteByte(':')
	w.Write(val)
	return w
}

// MarshalJSON returns the object built so far.
func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	res := make([]byte, 0, w.Len()+2)
	res = append(res, '{')
	res = append(res, w.Bytes()...)
	return append(res, '}'), nil
}
