package blocktree

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"testing"

	httpClient "github.com/iudanet/homeblocks/internal/client/api"
	"github.com/iudanet/homeblocks/internal/models"
	"github.com/iudanet/homeblocks/pkg/api"
)

const rootID = "00000000-0000-4000-8000-000000000000"

type fakeNode struct {
	id       string
	typ      string
	content  json.RawMessage
	children []string
}

// fakeRemote хранилище в памяти с теми же ограничениями, что и настоящее:
// не более 100 узлов на append, не более двух уровней вложенных children.
type fakeRemote struct {
	nodes       map[string]*fakeNode
	failAppend  map[int]error // номер вызова append (с 1) -> ошибка
	failList    map[string]error
	appendSizes []int
	listCalls   []string
	seq         int
	mu          sync.Mutex
}

var _ httpClient.ClientAPI = (*fakeRemote)(nil)

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		nodes:      map[string]*fakeNode{rootID: {id: rootID, typ: "page"}},
		failAppend: map[int]error{},
		failList:   map[string]error{},
	}
}

func (f *fakeRemote) lookup(id string) *fakeNode {
	if n, ok := f.nodes[id]; ok {
		return n
	}
	want := NormalizeID(id)
	for key, n := range f.nodes {
		if NormalizeID(key) == want {
			return n
		}
	}
	return nil
}

func (f *fakeRemote) newID() string {
	f.seq++
	return fmt.Sprintf("%08x-0000-4000-8000-%012x", f.seq, f.seq)
}

func (f *fakeRemote) toNode(n *fakeNode) api.Node {
	return api.Node{
		ID:          n.id,
		Type:        n.typ,
		Content:     n.content,
		HasChildren: len(n.children) > 0,
	}
}

func notFound(id string) error {
	return &httpClient.RequestError{
		Method:     http.MethodGet,
		Path:       "/v1/blocks/" + id,
		StatusCode: http.StatusNotFound,
		Code:       api.CodeNotFound,
		Message:    "block not found",
	}
}

func validation(msg string) error {
	return &httpClient.RequestError{
		Method:     http.MethodPatch,
		StatusCode: http.StatusBadRequest,
		Code:       api.CodeValidation,
		Message:    msg,
	}
}

func (f *fakeRemote) ListChildren(ctx context.Context, containerID, cursor string, pageSize int) (*api.ListChildrenResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listCalls = append(f.listCalls, containerID)
	if err, ok := f.failList[containerID]; ok {
		return nil, err
	}
	parent := f.lookup(containerID)
	if parent == nil {
		return nil, notFound(containerID)
	}

	start := 0
	if cursor != "" {
		var err error
		if start, err = strconv.Atoi(cursor); err != nil {
			return nil, validation("bad cursor")
		}
	}
	end := min(start+pageSize, len(parent.children))

	resp := &api.ListChildrenResponse{Object: api.ObjectList, Results: []api.Node{}}
	for _, id := range parent.children[start:end] {
		resp.Results = append(resp.Results, f.toNode(f.nodes[id]))
	}
	if end < len(parent.children) {
		next := strconv.Itoa(end)
		resp.NextCursor = &next
		resp.HasMore = true
	}
	return resp, nil
}

func checkInline(nodes []api.OutgoingNode, level int) error {
	if len(nodes) > api.MaxSiblingsPerAppend {
		return validation(fmt.Sprintf("children length %d exceeds %d", len(nodes), api.MaxSiblingsPerAppend))
	}
	for _, n := range nodes {
		if level >= api.MaxInlineNesting && len(n.Children) > 0 {
			return validation("children nesting exceeds limit")
		}
		if err := checkInline(n.Children, level+1); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeRemote) create(parentID string, nodes []api.OutgoingNode) []string {
	ids := make([]string, 0, len(nodes))
	for _, n := range nodes {
		id := f.newID()
		f.nodes[id] = &fakeNode{id: id, typ: n.Type, content: n.Content}
		f.nodes[id].children = f.create(id, n.Children)
		ids = append(ids, id)
	}
	return ids
}

func (f *fakeRemote) AppendChildren(ctx context.Context, containerID string, req api.AppendChildrenRequest) (*api.AppendChildrenResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	call := len(f.appendSizes) + 1
	f.appendSizes = append(f.appendSizes, len(req.Children))
	if err, ok := f.failAppend[call]; ok {
		return nil, err
	}

	parent := f.lookup(containerID)
	if parent == nil {
		return nil, notFound(containerID)
	}
	if err := checkInline(req.Children, 0); err != nil {
		return nil, err
	}

	insertAt := len(parent.children)
	if req.Position != nil {
		switch req.Position.Type {
		case api.PositionStart:
			insertAt = 0
		case api.PositionAfterBlock:
			insertAt = -1
			for i, id := range parent.children {
				if SameID(id, req.Position.AfterBlock.ID) {
					insertAt = i + 1
				}
			}
			if insertAt < 0 {
				return nil, validation("after_block is not a child of the container")
			}
		}
	}

	created := f.create(parent.id, req.Children)
	children := make([]string, 0, len(parent.children)+len(created))
	children = append(children, parent.children[:insertAt]...)
	children = append(children, created...)
	children = append(children, parent.children[insertAt:]...)
	parent.children = children

	resp := &api.AppendChildrenResponse{Object: api.ObjectList}
	for _, id := range parent.children {
		resp.Results = append(resp.Results, f.toNode(f.nodes[id]))
	}
	return resp, nil
}

func (f *fakeRemote) GetNode(ctx context.Context, id string) (*api.Node, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := f.lookup(id)
	if n == nil {
		return nil, notFound(id)
	}
	node := f.toNode(n)
	return &node, nil
}

func (f *fakeRemote) UpdateNode(ctx context.Context, id string, req api.UpdateNodeRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := f.lookup(id)
	if n == nil {
		return notFound(id)
	}
	n.typ = req.Type
	n.content = req.Content
	return nil
}

func (f *fakeRemote) DeleteNode(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := f.lookup(id)
	if n == nil {
		return notFound(id)
	}
	for _, parent := range f.nodes {
		for i, child := range parent.children {
			if child == n.id {
				parent.children = append(parent.children[:i:i], parent.children[i+1:]...)
				break
			}
		}
	}
	delete(f.nodes, n.id)
	return nil
}

func (f *fakeRemote) CreatePage(ctx context.Context, req api.CreatePageRequest) (*api.Node, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.newID()
	f.nodes[id] = &fakeNode{id: id, typ: "page"}
	node := f.toNode(f.nodes[id])
	return &node, nil
}

// render возвращает содержимое контейнера построчно: отступ на уровень и текст блока
func (f *fakeRemote) render(containerID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var lines []string
	var walk func(id string, level int)
	walk = func(id string, level int) {
		for _, child := range f.nodes[id].children {
			lines = append(lines, strings.Repeat("  ", level)+textOf(f.nodes[child].content))
			walk(child, level+1)
		}
	}
	walk(f.lookup(containerID).id, 0)
	return lines
}

func (f *fakeRemote) childIDs(containerID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.lookup(containerID).children...)
}

func textOf(content json.RawMessage) string {
	var payload struct {
		Text string `json:"text"`
	}
	_ = json.Unmarshal(content, &payload)
	return payload.Text
}

// renderBlocks рисует дерево в памяти в том же формате, что и fakeRemote.render
func renderBlocks(blocks []models.Block) []string {
	var lines []string
	var walk func(list []models.Block, level int)
	walk = func(list []models.Block, level int) {
		for _, b := range list {
			lines = append(lines, strings.Repeat("  ", level)+textOf(b.Content))
			walk(b.Children, level+1)
		}
	}
	walk(blocks, 0)
	return lines
}

func para(text string, children ...models.Block) models.Block {
	content, _ := json.Marshal(map[string]string{"text": text})
	b := models.Block{Type: "paragraph", Content: content}
	if len(children) > 0 {
		b.Children = children
	}
	return b
}

func leaves(prefix string, n int) []models.Block {
	blocks := make([]models.Block, n)
	for i := range blocks {
		blocks[i] = para(fmt.Sprintf("%s%d", prefix, i))
	}
	return blocks
}

// chain строит цепочку вложенности глубины depth
func chain(prefix string, depth int) models.Block {
	b := para(fmt.Sprintf("%s%d", prefix, depth))
	for i := depth - 1; i >= 0; i-- {
		b = para(fmt.Sprintf("%s%d", prefix, i), b)
	}
	return b
}

func newTestService(t *testing.T, remote httpClient.ClientAPI, opts ...Option) *service {
	t.Helper()
	return NewService(remote, nil, opts...).(*service)
}
