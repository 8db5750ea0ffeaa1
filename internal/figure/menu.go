package figure

// UpdateMenu is a dropdown attached to the layout whose buttons restyle
// trace visibility and relayout the title and annotations.
type UpdateMenu struct {
	Buttons []Button `json:"buttons"`
}

// Button is one update-menu entry. Args carries the restyle and relayout
// payloads in the order the surface expects.
type Button struct {
	Label  string `json:"label"`
	Method string `json:"method"`
	Args   []any  `json:"args"`
}

// ArticleResponseMenu builds the three-way menu that toggles between both
// populations, articles only, and responses only. The article trace must be
// first in the figure's data for the visibility masks to line up. Nil
// annotations are omitted from the relayout payloads, which happens on
// time-axis charts where no regression annotations exist.
func ArticleResponseMenu(baseTitle string, articleAnn, responseAnn *Annotation) []UpdateMenu {
	relayout := func(title string, anns ...*Annotation) map[string]any {
		m := map[string]any{"title": title}
		var present []Annotation
		for _, a := range anns {
			if a != nil {
				present = append(present, *a)
			}
		}
		if len(present) > 0 {
			m["annotations"] = present
		}
		return m
	}

	return []UpdateMenu{
		{
			Buttons: []Button{
				{
					Label:  "both",
					Method: "update",
					Args: []any{
						map[string]any{"visible": []bool{true, true}},
						relayout(baseTitle, articleAnn, responseAnn),
					},
				},
				{
					Label:  "articles",
					Method: "update",
					Args: []any{
						map[string]any{"visible": []bool{true, false}},
						relayout("Article "+baseTitle, articleAnn),
					},
				},
				{
					Label:  "responses",
					Method: "update",
					Args: []any{
						map[string]any{"visible": []bool{false, true}},
						relayout("Response "+baseTitle, responseAnn),
					},
				},
			},
		},
	}
}
