package inherit_test

import (
	"fmt"

	"github.com/matzehuels/bulletins/pkg/document"
	"github.com/matzehuels/bulletins/pkg/inherit"
	"github.com/matzehuels/bulletins/pkg/style"
)

func ExamplePropagate() {
	block := &style.Config{
		Heritable: style.Heritable{PrimaryColor: style.String("#111")},
		Local:     style.Local{Padding: style.String("8px")},
	}

	title := inherit.NewField("title", "Title", document.TextConfig{}, block)
	note := inherit.SetStyle(
		inherit.NewField("note", "Note", document.TextConfig{}, block),
		&style.Config{Heritable: style.Heritable{PrimaryColor: style.String("#999")}},
	)
	fmt.Println("seeded:", title.Style)

	block = &style.Config{Heritable: style.Heritable{PrimaryColor: style.String("#222"), FontSize: style.Number(14)}}
	for _, f := range inherit.Propagate([]document.Field{title, note}, block) {
		fmt.Printf("%s (%s): %s\n", f.ID, inherit.StateOf(f), f.Style)
	}
	// Output:
	// seeded: {"primary_color":"#111"}
	// title (inheriting): {"primary_color":"#222","font_size":14}
	// note (manual): {"primary_color":"#999"}
}

func ExampleResolve() {
	note := document.Field{
		ID:                  "note",
		Config:              document.TextConfig{},
		Style:               &style.Config{Heritable: style.Heritable{PrimaryColor: style.String("#999")}},
		StyleManuallyEdited: true,
	}
	container := &style.Config{Local: style.Local{Padding: style.String("4px")}}

	fmt.Println(inherit.Resolve(note, container))
	// Output:
	// {"primary_color":"#999","padding":"4px"}
}
