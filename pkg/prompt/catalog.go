package prompt

import (
	"strings"

	"github.com/shouni/astoria-image-kit/pkg/domain"
)

// Entry はカタログの1項目です。Label は UI 表示用、Descriptor はモデルに渡す英語表現です。
type Entry struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	Descriptor string `json:"descriptor"`
}

// Catalog は設定値を英語の記述子に変換する不変のテーブル群です。
// 生成後に変更する手段はありません。
type Catalog struct {
	styles  table
	colors  table
	genders table
	volumes table
}

type table struct {
	order []Entry
	index map[string]string
}

func newTable(entries []Entry) table {
	t := table{
		order: make([]Entry, 0, len(entries)),
		index: make(map[string]string, len(entries)),
	}
	for _, e := range entries {
		id := normalizeKey(e.ID)
		if _, dup := t.index[id]; dup {
			continue
		}
		t.order = append(t.order, e)
		t.index[id] = e.Descriptor
	}
	// ラベルでも引けるようにする。ID と衝突する場合は ID が優先
	for _, e := range t.order {
		if label := normalizeKey(e.Label); label != "" {
			if _, taken := t.index[label]; !taken {
				t.index[label] = e.Descriptor
			}
		}
	}
	return t
}

// normalizeKey は大文字小文字と区切り文字の揺れを吸収します。"Buzz Cut" と "buzz-cut" は同じキーです。
func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '_' || r == '-'
	}), "-")
}

func (t table) lookup(key string) (string, bool) {
	d, ok := t.index[normalizeKey(key)]
	return d, ok
}

func (t table) list() []Entry {
	out := make([]Entry, len(t.order))
	copy(out, t.order)
	return out
}

// CatalogTables は NewCatalog に渡す元データです。
type CatalogTables struct {
	Styles  []Entry
	Colors  []Entry
	Genders []Entry
	Volumes []Entry
}

// NewCatalog は渡されたテーブルをコピーして Catalog を作成します。
// 同じ ID が複数ある場合は最初の項目が使われます。
// 検索は ID とラベルのどちらでも、大文字小文字を区別せずに行えます。
func NewCatalog(t CatalogTables) *Catalog {
	return &Catalog{
		styles:  newTable(t.Styles),
		colors:  newTable(t.Colors),
		genders: newTable(t.Genders),
		volumes: newTable(t.Volumes),
	}
}

func (c *Catalog) Style(id domain.StyleID) (string, bool) { return c.styles.lookup(string(id)) }
func (c *Catalog) Color(id domain.ColorID) (string, bool) { return c.colors.lookup(string(id)) }
func (c *Catalog) Gender(g domain.Gender) (string, bool)  { return c.genders.lookup(string(g)) }
func (c *Catalog) Volume(v domain.Volume) (string, bool)  { return c.volumes.lookup(string(v)) }

// Styles は登録順のスタイル一覧を返します。
func (c *Catalog) Styles() []Entry { return c.styles.list() }

// Colors は登録順のカラー一覧を返します。
func (c *Catalog) Colors() []Entry { return c.colors.list() }

func (c *Catalog) Genders() []Entry { return c.genders.list() }
func (c *Catalog) Volumes() []Entry { return c.volumes.list() }
