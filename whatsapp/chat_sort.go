package whatsapp

import "bytes"

/* Criar tipos de dados específicos para a aplicação
* Usar o compilador a seu favor, tentar encontrar erros em tempo de compilação e não de execução.
 */

// ChatSort is the ordering of a chat listing
type ChatSort int

const (
	LastActive ChatSort = iota + 1
	ByName
)

func (c ChatSort) String() string {
	switch c {
	case LastActive:
		return "last_active"
	case ByName:
		return "name"
	}
	return "unknown"
}

// Define how to transform a ChatSort into a JSON
func (c ChatSort) MarshalJSON() ([]byte, error) {
	buffer := bytes.NewBufferString(`"`)
	buffer.WriteString(c.String())
	buffer.WriteString(`"`)
	return buffer.Bytes(), nil
}

// NewChatSort creates a ChatSort from its query value. An empty value
// means "last_active"; any other value sorts by name.
func NewChatSort(s string) ChatSort {
	if s == "" || s == "last_active" {
		return LastActive
	}
	return ByName
}
