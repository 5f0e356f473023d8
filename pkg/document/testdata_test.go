package document

import "github.com/matzehuels/bulletins/pkg/style"

// sampleContent builds a small bulletin tree used across tests.
func sampleContent() Content {
	return Content{
		Page: &Page{Size: "a4", Orientation: "portrait"},
		Style: &style.Config{Heritable: style.Heritable{
			PrimaryColor: style.String("#0a4"),
			Font:         style.String("Inter"),
		}},
		Header: &Container{
			Fields: []Field{
				{ID: "logo", Label: "Logo", Config: ImageConfig{URL: "https://example.org/logo.png"}},
			},
		},
		Sections: []Section{
			{
				ID:    "forecast",
				Label: "Forecast",
				Style: &style.Config{Heritable: style.Heritable{FontSize: style.Number(14)}},
				Blocks: []Block{
					{
						ID: "rain",
						Container: Container{
							Style: &style.Config{Local: style.Local{Padding: style.String("8px")}},
							Fields: []Field{
								{ID: "rain_total", Label: "Rainfall", Config: ClimateConfig{Variable: "precipitation", Unit: "mm"}, Value: 12.5},
								{
									ID:                  "rain_note",
									Label:               "Note",
									Config:              TextConfig{Multiline: true},
									Style:               &style.Config{Heritable: style.Heritable{PrimaryColor: style.String("#999")}},
									StyleManuallyEdited: true,
								},
							},
						},
					},
				},
			},
		},
		Footer: &Container{
			Fields: []Field{
				{ID: "issued", Label: "Issued", Config: DateConfig{Format: "2006-01-02"}},
			},
		},
	}
}
