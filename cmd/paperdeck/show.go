package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bgrellier/paperdeck/plan"
	"github.com/bgrellier/paperdeck/store"
)

var showCmd = &cobra.Command{
	Use:   "show <deck-id>",
	Short: "Print a stored deck plan",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	st, err := store.New(storePath())
	if err != nil {
		return err
	}
	defer st.Close()

	deck, err := st.GetDeck(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	var slides []plan.Slide
	if err := json.Unmarshal([]byte(deck.Plan), &slides); err != nil {
		return fmt.Errorf("decoding stored plan: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n%s (%d slides, %d bullets)\n",
		deck.Title, deck.ID, deck.SlideCount, deck.BulletCount)

	for i, s := range slides {
		fmt.Fprintf(out, "\n[%d] %s (%s)\n", i+1, s.Title, s.Section)
		if s.Insight != "" {
			fmt.Fprintf(out, "    > %s\n", s.Insight)
		}
		for _, b := range s.Bullets {
			fmt.Fprintf(out, "    - %s\n", b)
		}
		for _, img := range s.Images {
			fmt.Fprintf(out, "    [fig] %s\n", img.Path)
		}
	}
	return nil
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List converted documents and their decks",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	st, err := store.New(storePath())
	if err != nil {
		return err
	}
	defer st.Close()

	docs, err := st.ListDocuments(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tDECK\tSLIDES")
	for _, doc := range docs {
		deckID, slides := "-", "-"
		if d, err := st.LatestDeck(cmd.Context(), doc.ID); err == nil {
			deckID = d.ID
			slides = fmt.Sprint(d.SlideCount)
		}
		title := doc.Title
		if title == "" {
			title = doc.Filename
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", doc.ID, title, doc.Status, deckID, slides)
	}
	return w.Flush()
}
