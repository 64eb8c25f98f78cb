package blocktree

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/iudanet/homeblocks/pkg/api"
)

type anchorKind int

const (
	anchorEnd anchorKind = iota
	anchorStart
	anchorAfter
)

// Anchor определяет узел, после которого вставляется новое содержимое.
// Нулевое значение означает добавление в конец контейнера.
// Anchor живёт в пределах одной операции записи и сдвигается после каждого append.
type Anchor struct {
	id   string
	kind anchorKind
}

// AtEnd возвращает якорь "в конец контейнера"
func AtEnd() Anchor {
	return Anchor{kind: anchorEnd}
}

// AtStart возвращает якорь "в начало контейнера"
func AtStart() Anchor {
	return Anchor{kind: anchorStart}
}

// After возвращает якорь "после узла id". Пустой id равнозначен AtEnd.
func After(id string) Anchor {
	if id == "" {
		return AtEnd()
	}
	return Anchor{id: id, kind: anchorAfter}
}

// ID возвращает id узла-якоря или пустую строку для AtEnd/AtStart
func (a Anchor) ID() string {
	return a.id
}

// IsEnd reports whether the anchor appends at the end of the container.
func (a Anchor) IsEnd() bool {
	return a.kind == anchorEnd
}

func (a Anchor) String() string {
	switch a.kind {
	case anchorStart:
		return "start"
	case anchorAfter:
		return "after:" + a.id
	default:
		return "end"
	}
}

// Position возвращает позицию для запроса append; nil означает конец контейнера
func (a Anchor) Position() *api.Position {
	switch a.kind {
	case anchorStart:
		return &api.Position{Type: api.PositionStart}
	case anchorAfter:
		return &api.Position{Type: api.PositionAfterBlock, AfterBlock: &api.BlockRef{ID: a.id}}
	default:
		return nil
	}
}

// Advance вычисляет якорь для следующего append той же операции:
// id последнего из added только что вставленных узлов.
//
// results - упорядоченный набор соседей, который вернул append.
// Для After(id) якорь ищется в results с нормализацией id, новый якорь - results[idx+added].
// Для AtEnd новый якорь - последний элемент results, для AtStart - results[added-1].
// Если якорь не найден или индекс выходит за пределы results, возвращается ErrContractViolation.
func (a Anchor) Advance(results []api.Node, added int) (Anchor, error) {
	if added <= 0 {
		return a, fmt.Errorf("%w: append reported %d added nodes", ErrContractViolation, added)
	}
	if len(results) == 0 {
		return a, fmt.Errorf("%w: append returned an empty result set", ErrContractViolation)
	}

	switch a.kind {
	case anchorStart:
		if added > len(results) {
			return a, fmt.Errorf("%w: %d nodes added at start but result set has %d entries",
				ErrContractViolation, added, len(results))
		}
		return After(results[added-1].ID), nil

	case anchorAfter:
		idx := indexOf(results, a.id)
		if idx < 0 {
			return a, fmt.Errorf("%w: anchor %s not found in append result set of %d entries",
				ErrContractViolation, a.id, len(results))
		}
		next := idx + added
		if next >= len(results) {
			return a, fmt.Errorf("%w: anchor %s at index %d plus %d added exceeds result set of %d entries",
				ErrContractViolation, a.id, idx, added, len(results))
		}
		return After(results[next].ID), nil

	default:
		return After(results[len(results)-1].ID), nil
	}
}

// NormalizeID приводит id к виду для сравнения: нижний регистр, только буквы и цифры.
// Хранилище может возвращать id как с разделителями, так и без них.
func NormalizeID(id string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, id)
}

// SameID reports whether two ids identify the same node.
func SameID(a, b string) bool {
	return NormalizeID(a) == NormalizeID(b)
}

func indexOf(results []api.Node, id string) int {
	want := NormalizeID(id)
	if want == "" {
		return -1
	}
	for i, node := range results {
		if NormalizeID(node.ID) == want {
			return i
		}
	}
	return -1
}
