package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
)

// Output formats accepted by Write.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Write renders rep to w in format.
func Write(w io.Writer, rep Report, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		return writeText(w, rep)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func writeText(w io.Writer, rep Report) error {
	s := rep.Summary
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Faculty productivity report\t%s\n", rep.GeneratedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(tw, "Professors\t%d\n", s.Professors)
	fmt.Fprintf(tw, "Total papers\t%d\n", s.TotalPapers)
	fmt.Fprintf(tw, "Avg papers per professor\t%.2f\n", s.AvgPapersPerProfessor)
	fmt.Fprintf(tw, "Published this year\t%d\n", s.PublishedThisYear)
	fmt.Fprintf(tw, "Published last year\t%d\n", s.PublishedLastYear)
	fmt.Fprintf(tw, "Top researchers\t%d\n", s.TopResearchers)

	if len(rep.TopResearchers) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "TOP RESEARCHERS")
		for _, p := range rep.TopResearchers {
			fmt.Fprintf(tw, "  %s\t%s\t%d papers\t%.1f/yr\n", p.Name, p.UniversityName, p.TotalPapers, p.AvgPapersPerYear)
		}
	}

	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "RANKED BY %s %s\n", strings.ToUpper(rep.Sort), strings.ToUpper(rep.Order))
	fmt.Fprintln(tw, "#\tNAME\tUNIVERSITY\tFIELD\tPAPERS\tAVG/YR\tTHIS YR\tLAST YR")
	for _, p := range rep.Ranked {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%.1f\t%s\t%s\n",
			p.Rank, p.Name, p.UniversityName, p.Field, p.TotalPapers, p.AvgPapersPerYear,
			yesNo(p.PublishedThisYear), yesNo(p.PublishedLastYear))
	}
	return tw.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
