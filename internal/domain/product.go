package domain

import "strings"

// ProductCode identifies one physical product, typically a scanned barcode value.
type ProductCode string

// NewProductCode trims surrounding whitespace and rejects empty codes.
func NewProductCode(raw string) (ProductCode, error) {
	code := strings.TrimSpace(raw)
	if code == "" {
		return "", &OpError{Op: "code.parse", Kind: KindValidation, Err: ErrEmptyCode}
	}
	return ProductCode(code), nil
}

func (c ProductCode) String() string { return string(c) }

// Batch is the set of codes submitted together in one add operation.
// Repeated codes are dropped; first-seen order is kept so inserts are
// deterministic.
type Batch struct {
	codes []ProductCode
}

// NewBatch validates every raw code and builds a duplicate-free batch.
// A single empty code fails the whole batch.
func NewBatch(raw ...string) (Batch, error) {
	seen := make(map[ProductCode]struct{}, len(raw))
	codes := make([]ProductCode, 0, len(raw))
	for _, r := range raw {
		code, err := NewProductCode(r)
		if err != nil {
			return Batch{}, err
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	return Batch{codes: codes}, nil
}

// Codes returns a copy of the batch contents.
func (b Batch) Codes() []ProductCode {
	out := make([]ProductCode, len(b.codes))
	copy(out, b.codes)
	return out
}

// Strings returns the batch contents as plain strings.
func (b Batch) Strings() []string {
	out := make([]string, len(b.codes))
	for i, c := range b.codes {
		out[i] = string(c)
	}
	return out
}

func (b Batch) Len() int { return len(b.codes) }

func (b Batch) IsEmpty() bool { return len(b.codes) == 0 }
