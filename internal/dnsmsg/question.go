package dnsmsg

import (
	"fmt"

	"github.com/duskcoil/dnsdig/internal/dnsname"
	"github.com/duskcoil/dnsdig/internal/wire"
)

// Question is a single entry in the question section (RFC 1035 §4.1.2).
type Question struct {
	Name  dnsname.Name
	QType QType
	Class QClass
}

// NewQuestion builds the question for a single name/type lookup, defaulting
// to the IN class as every caller in this codebase does.
func NewQuestion(name dnsname.Name, qtype QType) Question {
	return Question{Name: name, QType: qtype, Class: ClassIN}
}

// Marshal writes the question in wire form: name, type, class.
func (q Question) Marshal(b *wire.Builder) error {
	encoded, err := dnsname.Encode(q.Name)
	if err != nil {
		return fmt.Errorf("question name: %w", err)
	}
	b.WriteBytes(encoded)
	b.WriteUint16(uint16(q.QType))
	b.WriteUint16(uint16(q.Class))
	return nil
}

// ParseQuestion reads one question section entry from msg at *off.
func ParseQuestion(msg []byte, off *int) (Question, error) {
	name, err := dnsname.Decode(msg, off)
	if err != nil {
		return Question{}, fmt.Errorf("question name: %w", err)
	}
	c := &wire.Cursor{Msg: msg, Off: *off}
	qtype, err := c.ReadUint16()
	if err != nil {
		return Question{}, fmt.Errorf("question type: %w", err)
	}
	class, err := c.ReadUint16()
	if err != nil {
		return Question{}, fmt.Errorf("question class: %w", err)
	}
	*off = c.Off
	return Question{Name: name, QType: QType(qtype), Class: QClass(class)}, nil
}

func (q Question) String() string {
	return fmt.Sprintf("%s\t%s\t%s", q.Name.String(), q.Class, q.QType)
}
