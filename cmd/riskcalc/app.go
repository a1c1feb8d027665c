package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/waterborne-risk-service/internal/content"
	"github.com/couchcryptid/waterborne-risk-service/internal/domain"
)

func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "riskcalc",
		Usage: "Water-borne disease risk assessment",
		Commands: []*cli.Command{
			cmdScore(out),
			cmdCatalog(out),
			cmdEducation(out),
		},
	}
}

type scoreOutput struct {
	Input           domain.AssessmentInput   `json:"input"`
	Score           int                      `json:"score"`
	MaxScore        int                      `json:"max_score"`
	Tier            domain.RiskTier          `json:"tier"`
	Display         domain.ScoreDisplay      `json:"display"`
	Recommendations domain.RecommendationSet `json:"recommendations"`
}

func cmdScore(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "score",
		Usage: "Score symptoms, water source and recent rainfall",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "symptom",
				Aliases: []string{"s"},
				Usage:   "symptom id, repeat for each symptom",
			},
			&cli.StringFlag{
				Name:     "water",
				Aliases:  []string{"w"},
				Usage:    "water source id",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "rainfall",
				Aliases:  []string{"r"},
				Usage:    "recent rainfall id",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the result as JSON",
			},
		},
		Action: func(_ context.Context, c *cli.Command) error {
			in := domain.ResetAssessment()
			for _, id := range c.StringSlice("symptom") {
				in = in.ToggleSymptom(id, true)
			}
			in.WaterSourceID = c.String("water")
			in.RainfallID = c.String("rainfall")

			if err := checkSelection(in); err != nil {
				return err
			}

			result := domain.ScoreAssessment(in)
			res := scoreOutput{
				Input:           in,
				Score:           result.TotalScore,
				MaxScore:        domain.MaxScore(),
				Tier:            result.Tier,
				Display:         domain.NewScoreDisplay(result.TotalScore),
				Recommendations: domain.Recommendations(result.Tier),
			}
			if c.Bool("json") {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			return printScore(out, res)
		},
	}
}

func checkSelection(in domain.AssessmentInput) error {
	if !domain.WaterSources().Contains(in.WaterSourceID) {
		return fmt.Errorf("unknown water source %q (see: riskcalc catalog)", in.WaterSourceID)
	}
	if !domain.RainfallLevels().Contains(in.RainfallID) {
		return fmt.Errorf("unknown rainfall level %q (see: riskcalc catalog)", in.RainfallID)
	}
	symptoms := domain.Symptoms()
	for _, id := range in.SymptomIDs {
		if !symptoms.Contains(id) {
			return fmt.Errorf("unknown symptom %q (see: riskcalc catalog)", id)
		}
	}
	return nil
}

func printScore(out io.Writer, res scoreOutput) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Risk level: %s\n", res.Tier)
	fmt.Fprintf(&b, "Score:      %d/%d (%.0f%% of %d)\n", res.Score, res.MaxScore, res.Display.Percent, res.Display.Scale)
	if esc := res.Recommendations.Escalation; esc != nil {
		fmt.Fprintf(&b, "\n!! %s\n   %s\n", esc.Title, esc.Message)
	}
	b.WriteString("\nRecommendations:\n")
	for i, action := range res.Recommendations.Actions {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, action)
	}
	_, err := io.WriteString(out, b.String())
	return err
}

func cmdCatalog(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "List symptom, water source and rainfall identifiers with weights",
		Action: func(_ context.Context, _ *cli.Command) error {
			cats := domain.AllCatalogs()
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, sec := range []struct {
				name    string
				entries domain.Catalog
			}{
				{"SYMPTOMS", cats.Symptoms},
				{"WATER SOURCES", cats.WaterSources},
				{"RAINFALL", cats.RainfallLevels},
			} {
				fmt.Fprintf(tw, "%s\tWEIGHT\tLABEL\n", sec.name)
				for _, e := range sec.entries {
					fmt.Fprintf(tw, "%s\t%d\t%s\n", e.ID, e.Weight, e.Label)
				}
				fmt.Fprintln(tw, "\t\t")
			}
			fmt.Fprintf(tw, "max score\t%d\t\n", domain.MaxScore())
			return tw.Flush()
		},
	}
}

func cmdEducation(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "education",
		Usage: "Print the health education reference",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "lang",
				Usage: "language tag, en or as",
				Value: "en",
			},
			&cli.StringFlag{
				Name:  "topic",
				Usage: "single topic: " + strings.Join(content.TopicIDs(), ", "),
			},
		},
		Action: func(_ context.Context, c *cli.Command) error {
			lib, err := content.Load("en")
			if err != nil {
				return err
			}

			var v any
			if topic := c.String("topic"); topic != "" {
				v, err = lib.Topic(c.String("lang"), topic)
			} else {
				v, err = lib.All(c.String("lang"))
			}
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(v); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
