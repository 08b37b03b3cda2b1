package main

import (
	"encoding/json"
	"fmt"
	"io"

	"topstories/types"
)

// printLinks writes each source heading followed by its links.
func printLinks(w io.Writer, sets types.LinkSets) {
	for _, s := range sets {
		count := countStyle
		if len(s.Links) == 0 {
			count = emptyStyle
		}
		fmt.Fprintln(w, titleStyle.Render(s.Source)+" "+count.Render(fmt.Sprintf("- %d links:", len(s.Links))))
		for _, l := range s.Links {
			fmt.Fprintln(w, linkStyle.Render(l))
		}
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
