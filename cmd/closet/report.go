package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/liliang-cn/closet/internal/domain"
	"github.com/liliang-cn/closet/internal/seed"
	"github.com/liliang-cn/closet/internal/wardrobe"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

const maxCellWidth = 28

func newReportCmd() *cobra.Command {
	var (
		criteria domain.Criteria
		sortBy   string
	)

	cmd := &cobra.Command{
		Use:   "report FILE",
		Short: "Print a filtered, sorted listing and summary of a wardrobe file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := seed.Load(args[0])
			if err != nil {
				return err
			}

			selected := wardrobe.Sort(wardrobe.Filter(items, criteria), domain.ParseSortKey(sortBy))
			writeTable(cmd.OutOrStdout(), selected)
			fmt.Fprintln(cmd.OutOrStdout())
			writeSummary(cmd.OutOrStdout(), wardrobe.Summarize(selected))
			return nil
		},
	}

	cmd.Flags().StringVar(&criteria.Category, "category", "", "Only items in this category")
	cmd.Flags().StringVar(&criteria.Color, "color", "", "Only items of this color")
	cmd.Flags().StringVar(&criteria.Brand, "brand", "", "Only items of this brand")
	cmd.Flags().StringVar(&criteria.Tags, "tag", "", "Only items carrying this tag")
	cmd.Flags().StringVar(&sortBy, "sort", string(domain.SortByName), "Sort key: name, purchaseDate or size")
	return cmd
}

func writeTable(w io.Writer, items []*domain.ClothingItem) {
	header := []string{"NAME", "CATEGORY", "COLOR", "BRAND", "SIZE", "PURCHASED", "TAGS"}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			item.Name, item.Category, item.Color, item.Brand, item.Size,
			item.PurchaseDate, strings.Join(item.Tags, ","),
		})
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if cw := min(runewidth.StringWidth(cell), maxCellWidth); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	writeRow(w, header, widths)
	for _, row := range rows {
		writeRow(w, row, widths)
	}
}

func writeRow(w io.Writer, cells []string, widths []int) {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		cell = runewidth.Truncate(cell, maxCellWidth, "…")
		if i == len(cells)-1 {
			parts[i] = cell
			continue
		}
		parts[i] = runewidth.FillRight(cell, widths[i])
	}
	fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
}

func writeSummary(w io.Writer, s domain.Summary) {
	for _, c := range domain.Categories {
		n := s.CategoryCounts[c]
		fmt.Fprintf(w, "%s %3d %s\n", runewidth.FillRight(c, 12), n, strings.Repeat("#", n))
	}
	fmt.Fprintf(w, "resell/donate: %d  other: %d\n", s.WithTags, s.WithoutTags)
}
