package domain

// Seed counters. They sit one past the highest seeded IDs.
const (
	SeedNextGroupID GroupID = 3
	SeedNextCardID  CardID  = 203
)

// SeedState returns the first-run dataset: two groups of two cards each.
// Each call returns fresh values that the caller may mutate.
func SeedState() *State {
	return &State{
		Groups: map[GroupID]*Group{
			1: {
				ID:   1,
				Name: "基礎知識 (例)",
				Cards: []Card{
					{ID: 101, Category: "日本の歴史", Question: "江戸幕府を開いた人物は？", Answer: "徳川家康"},
					{ID: 102, Category: "プログラミング", Question: "Reactにおける状態管理フックの名前は？", Answer: "useState"},
				},
			},
			2: {
				ID:   2,
				Name: "科学と地理 (例)",
				Cards: []Card{
					{ID: 201, Category: "地理", Question: "世界の六大陸のうち、最も面積が広いのは？", Answer: "アジア大陸"},
					{ID: 202, Category: "科学", Question: "酸素の元素記号は？", Answer: "O"},
				},
			},
		},
		NextGroupID: SeedNextGroupID,
		NextCardID:  SeedNextCardID,
	}
}
