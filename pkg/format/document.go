package format

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Beastly713/hashira/pkg/digits"
	"github.com/Beastly713/hashira/pkg/shamir"
)

// KeysField is the reserved top-level key holding n and k.
const KeysField = "keys"

var (
	// ErrMissingKeys indicates a document without a "keys" object.
	ErrMissingKeys = errors.New(`document is missing the "keys" object`)

	// ErrInvalidLabel indicates a share label that is not a base-10 integer.
	ErrInvalidLabel = errors.New("share label is not a decimal integer")

	// ErrDuplicateLabel indicates two labels naming the same x-coordinate.
	ErrDuplicateLabel = errors.New("duplicate share label")
)

// Keys holds the declared share count and threshold of a document.
type Keys struct {
	// N is the number of shares that were issued
	N int `json:"n" yaml:"n"`

	// K is the number of shares required to recover the secret
	K int `json:"k" yaml:"k"`
}

// Validate checks if the declared counts are sane.
func (k Keys) Validate() error {
	if k.K < 1 {
		return fmt.Errorf("invalid threshold k=%d: must be at least 1", k.K)
	}
	if k.N < 1 {
		return fmt.Errorf("invalid share count n=%d: must be at least 1", k.N)
	}
	if k.K > k.N {
		return fmt.Errorf("invalid threshold k=%d for n=%d", k.K, k.N)
	}
	return nil
}

// Base is a numeric base declared either as a string ("16") or a number (16).
type Base int

func (b *Base) UnmarshalJSON(data []byte) error {
	text := string(data)
	if strings.HasPrefix(text, `"`) {
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
	}
	return b.set(text)
}

func (b *Base) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: base must be a scalar", value.Line)
	}
	return b.set(value.Value)
}

func (b *Base) set(text string) error {
	base, err := digits.ParseBase(text)
	if err != nil {
		return err
	}
	*b = Base(base)
	return nil
}

// Root is the encoded y-value of one share.
type Root struct {
	Base  Base   `json:"base" yaml:"base"`
	Value string `json:"value" yaml:"value"`
}

// Entry is one labelled share as it appears in a document.
type Entry struct {
	Label string
	X     *big.Int
	Root  Root
}

// DuplicateLabelError names the two labels that resolve to one x.
type DuplicateLabelError struct {
	First, Second string
}

func (e *DuplicateLabelError) Error() string {
	return fmt.Sprintf("duplicate share label: %q and %q both name x = %s", e.First, e.Second, canonical(e.First))
}

func (e *DuplicateLabelError) Unwrap() error {
	return ErrDuplicateLabel
}

// Document is a parsed share set. Entries are ordered by ascending x.
type Document struct {
	Keys    Keys
	Entries []Entry
}

// Shares decodes every entry into a shamir.Share, keeping document order.
func (d *Document) Shares() ([]shamir.Share, error) {
	out := make([]shamir.Share, 0, len(d.Entries))
	for _, e := range d.Entries {
		y, err := digits.Decode(e.Root.Value, int(e.Root.Base))
		if err != nil {
			return nil, fmt.Errorf("share %q: %w", e.Label, err)
		}
		out = append(out, shamir.Share{X: new(big.Int).Set(e.X), Y: y})
	}
	return out, nil
}

// Label returns the label of the entry whose x equals x, or x itself.
func (d *Document) Label(x *big.Int) string {
	for _, e := range d.Entries {
		if e.X.Cmp(x) == 0 {
			return e.Label
		}
	}
	return x.String()
}

// addEntry parses label and appends it with root.
func (d *Document) addEntry(label string, root Root) error {
	x, err := parseLabel(label)
	if err != nil {
		return err
	}
	d.Entries = append(d.Entries, Entry{Label: label, X: x, Root: root})
	return nil
}

// finish orders entries by x, then label, and rejects labels that collide.
func (d *Document) finish() error {
	sort.SliceStable(d.Entries, func(i, j int) bool {
		if c := d.Entries[i].X.Cmp(d.Entries[j].X); c != 0 {
			return c < 0
		}
		return d.Entries[i].Label < d.Entries[j].Label
	})
	for i := 1; i < len(d.Entries); i++ {
		if d.Entries[i-1].X.Cmp(d.Entries[i].X) == 0 {
			return &DuplicateLabelError{First: d.Entries[i-1].Label, Second: d.Entries[i].Label}
		}
	}
	return nil
}

// parseLabel accepts an optional minus sign followed by decimal digits.
func parseLabel(label string) (*big.Int, error) {
	body := strings.TrimPrefix(label, "-")
	if body == "" || strings.TrimLeft(body, "0123456789") != "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}
	x, ok := new(big.Int).SetString(label, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}
	return x, nil
}

func canonical(label string) string {
	if x, err := parseLabel(label); err == nil {
		return x.String()
	}
	return strconv.Quote(label)
}
