package blocktree

import (
	"fmt"

	"github.com/iudanet/homeblocks/internal/models"
	"github.com/iudanet/homeblocks/pkg/api"
)

// InlineNestingBudget is the number of children levels a single append call accepts.
const InlineNestingBudget = api.MaxInlineNesting

// MaxSiblingsPerAppend is the chunk size for append calls.
const MaxSiblingsPerAppend = api.MaxSiblingsPerAppend

// MaxDepth возвращает максимальную глубину вложенности списка блоков.
// Блок без поля Children имеет глубину 0; присутствие Children, даже пустого,
// даёт глубину не меньше 1 в этой позиции.
// Вход не изменяется. Циклическая структура возвращает ErrContractViolation.
func MaxDepth(blocks []models.Block) (int, error) {
	shape, err := analyze(blocks)
	if err != nil {
		return 0, err
	}
	return shape.depth, nil
}

// blockShape глубина и ширина поддерева одного блока или списка
type blockShape struct {
	depth  int // максимальная глубина вложенности
	widest int // самый длинный вложенный массив children
}

func (s *blockShape) merge(o blockShape) {
	s.depth = max(s.depth, o.depth)
	s.widest = max(s.widest, o.widest)
}

func (s blockShape) fits() bool {
	return s.depth <= InlineNestingBudget && s.widest <= MaxSiblingsPerAppend
}

// treeShape результат одного прохода по дереву.
// blocks хранит форму поддерева каждого посещённого блока.
type treeShape struct {
	blockShape
	blocks map[*models.Block]blockShape
}

// fitsBlock сообщает, помещается ли блок целиком в один append.
func (t treeShape) fitsBlock(block *models.Block) (bool, error) {
	if s, ok := t.blocks[block]; ok {
		return s.fits(), nil
	}
	return fitsInline(*block)
}

type depthFrame struct {
	owner *models.Block // блок, в чьи Children спустились; nil для корня
	list  []models.Block
	next  int
	sub   blockShape // накопленная форма уже пройденных элементов list
}

// analyze обходит дерево итеративно за O(количество узлов).
// В active лежат блоки на текущем пути от корня:
// повторное появление блока на своём же пути означает цикл.
// Форма блока вычисляется, когда снимается его фрейм.
func analyze(blocks []models.Block) (treeShape, error) {
	shape := treeShape{blocks: make(map[*models.Block]blockShape)}
	if len(blocks) == 0 {
		return shape, nil
	}

	active := make(map[*models.Block]bool)
	stack := []depthFrame{{list: blocks}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next >= len(top.list) {
			done := *top
			stack = stack[:len(stack)-1]
			if done.owner == nil {
				shape.blockShape = done.sub
				continue
			}
			delete(active, done.owner)
			own := blockShape{
				depth:  done.sub.depth + 1,
				widest: max(len(done.owner.Children), done.sub.widest),
			}
			shape.blocks[done.owner] = own
			stack[len(stack)-1].sub.merge(own)
			continue
		}

		block := &top.list[top.next]
		top.next++

		switch {
		case block.Children == nil:
			shape.blocks[block] = blockShape{}
		case len(block.Children) == 0:
			own := blockShape{depth: 1}
			shape.blocks[block] = own
			top.sub.merge(own)
		default:
			if active[block] {
				return treeShape{}, fmt.Errorf("%w: block tree contains a cycle at depth %d",
					ErrContractViolation, len(stack))
			}
			active[block] = true
			stack = append(stack, depthFrame{owner: block, list: block.Children})
		}
	}

	return shape, nil
}

// fitsInline сообщает, можно ли отправить блок вместе со всеми потомками одним append
func fitsInline(block models.Block) (bool, error) {
	shape, err := analyze([]models.Block{block})
	if err != nil {
		return false, err
	}
	return shape.fits(), nil
}
