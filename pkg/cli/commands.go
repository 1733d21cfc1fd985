package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/devicelab-dev/flowdigest/pkg/core"
	"github.com/devicelab-dev/flowdigest/pkg/flow"
	"github.com/devicelab-dev/flowdigest/pkg/interaction"
	"github.com/devicelab-dev/flowdigest/pkg/logger"
	"github.com/devicelab-dev/flowdigest/pkg/report"
	"github.com/devicelab-dev/flowdigest/pkg/social"
	"github.com/devicelab-dev/flowdigest/pkg/summary"
	"github.com/devicelab-dev/flowdigest/pkg/validator"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func inputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "input",
		Aliases: []string{"i"},
		Usage:   "Flow file to read (default: input from config, flow.json)",
		EnvVars: []string{"FLOWDIGEST_INPUT"},
	}
}

func outputFlag(usage string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   usage,
	}
}

var interactionsCommand = &cli.Command{
	Name:  "interactions",
	Usage: "List the user's interactions and write interactions.md",
	Flags: []cli.Flag{
		inputFlag(),
		outputFlag("Markdown file to write (default: interactions.md)"),
		&cli.StringFlag{
			Name:  "json",
			Usage: "Also write a JSON export to this path",
		},
	},
	Action: func(c *cli.Context) error {
		return withSession(c, func(s *session) error {
			if path := c.String("output"); path != "" {
				s.cfg.Output.Interactions = path
			}
			if path := c.String("json"); path != "" {
				s.cfg.Output.InteractionsJSON = path
			}
			return s.runInteractions(inputPath(c, s))
		})
	},
}

var summaryCommand = &cli.Command{
	Name:  "summary",
	Usage: "Summarize what the user was trying to accomplish and write summary.md",
	Description: `Uses the text completion service when OPENAI_API_KEY is set and falls
back to a local template otherwise, or when the service fails.`,
	Flags: []cli.Flag{
		inputFlag(),
		outputFlag("Markdown file to write (default: summary.md)"),
	},
	Action: func(c *cli.Context) error {
		return withSession(c, func(s *session) error {
			if path := c.String("output"); path != "" {
				s.cfg.Output.Summary = path
			}
			_, err := s.runSummary(c.Context, inputPath(c, s))
			return err
		})
	},
}

var imageCommand = &cli.Command{
	Name:        "image",
	Usage:       "Generate a social media image for the flow and write social.png",
	Description: `Requires OPENAI_API_KEY. Any failure of the image service is fatal.`,
	Flags: []cli.Flag{
		inputFlag(),
		outputFlag("PNG file to write (default: social.png)"),
		&cli.StringFlag{
			Name:  "narrative",
			Usage: "Narrative hint for the image (default: the flow name)",
		},
	},
	Action: func(c *cli.Context) error {
		return withSession(c, func(s *session) error {
			if path := c.String("output"); path != "" {
				s.cfg.Output.Image = path
			}
			return s.runImage(c.Context, inputPath(c, s), c.String("narrative"))
		})
	},
}

var runCommand = &cli.Command{
	Name:  "run",
	Usage: "Produce interactions.md, summary.md and social.png in sequence",
	Flags: []cli.Flag{
		inputFlag(),
		&cli.BoolFlag{
			Name:  "skip-image",
			Usage: "Do not generate the social image",
		},
		&cli.BoolFlag{
			Name:  "summary-narrative",
			Usage: "Use the generated summary as the image's narrative hint",
		},
		&cli.StringFlag{
			Name:  "html",
			Usage: "Also write an HTML digest page to this path",
		},
	},
	Action: func(c *cli.Context) error {
		return withSession(c, func(s *session) error {
			input := inputPath(c, s)
			if err := s.runInteractions(input); err != nil {
				return err
			}
			res, err := s.runSummary(c.Context, input)
			if err != nil {
				return err
			}
			if path := c.String("html"); path != "" {
				s.cfg.Output.HTML = path
			}

			imagePath := ""
			if !c.Bool("skip-image") {
				narrative := ""
				if c.Bool("summary-narrative") {
					narrative = res.Text
				}
				if err := s.runImage(c.Context, input, narrative); err != nil {
					return err
				}
				imagePath = s.cfg.Output.Image
			}
			return s.runDigest(input, res.Text, imagePath)
		})
	},
}

var validateCommand = &cli.Command{
	Name:      "validate",
	Usage:     "Check flow files for problems the extraction silently tolerates",
	ArgsUsage: "[flow-file-or-folder]...",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "Exit with an error when any issue is found",
		},
	},
	Action: func(c *cli.Context) error {
		return withSession(c, func(s *session) error {
			paths := c.Args().Slice()
			if len(paths) == 0 {
				paths = []string{s.cfg.Input}
			}
			return s.runValidate(paths, c.Bool("strict"))
		})
	},
}

func withSession(c *cli.Context, fn func(*session) error) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	defer s.close()

	if err := fn(s); err != nil {
		s.log.Error("command failed",
			zap.Error(err),
			zap.String("category", core.CategoryOf(err).String()))
		return err
	}
	return nil
}

func inputPath(c *cli.Context, s *session) string {
	if path := c.String("input"); path != "" {
		return path
	}
	return s.cfg.Input
}

// load reads the flow and extracts its interactions.
func (s *session) load(path string) (*flow.Flow, []interaction.Interaction, error) {
	f, err := flow.ParseFile(path)
	if err != nil {
		return nil, nil, err
	}
	interactions := interaction.Extract(f)
	s.log.Debug("flow loaded",
		zap.String("path", path),
		zap.Int("steps", len(f.Steps)),
		zap.Int("events", len(f.CapturedEvents)),
		zap.Int("interactions", len(interactions)))
	return f, interactions, nil
}

func (s *session) runInteractions(input string) error {
	f, interactions, err := s.load(input)
	if err != nil {
		return err
	}

	fmt.Fprintln(s.out, "========== Identifying User Interactions ==========")
	for _, line := range interaction.Lines(interactions) {
		fmt.Fprintln(s.out, line)
	}

	if err := report.WriteInteractions(s.cfg.Output.Interactions, interactions); err != nil {
		return err
	}
	s.wrote(s.cfg.Output.Interactions)

	if path := s.cfg.Output.InteractionsJSON; path != "" {
		export := report.BuildExport(f.DisplayName(""), f.SourcePath, interactions, time.Now())
		if err := report.WriteExport(path, export); err != nil {
			return err
		}
		s.wrote(path)
	}
	return nil
}

func (s *session) runSummary(ctx context.Context, input string) (summary.Result, error) {
	f, interactions, err := s.load(input)
	if err != nil {
		return summary.Result{}, err
	}

	// without credentials the generator falls back to the template
	gen := summary.NewGenerator(nil)
	gen.Logger = s.log
	if client, err := s.aiClient(); err == nil {
		gen.Completer = client
	}

	res := gen.Generate(ctx, f, interactions)
	s.log.Info("summary generated", zap.String("source", string(res.Source)))

	if err := report.WriteSummary(s.cfg.Output.Summary, res.Text); err != nil {
		return res, err
	}
	s.wrote(s.cfg.Output.Summary)
	return res, nil
}

func (s *session) runImage(ctx context.Context, input, narrative string) error {
	fmt.Fprintln(s.out, "========== Generating Social Media Image ==========")

	f, interactions, err := s.load(input)
	if err != nil {
		return err
	}

	bg, err := social.ParseHexColor(s.cfg.Image.Background)
	if err != nil {
		return err
	}
	client, err := s.aiClient()
	if err != nil {
		return err
	}

	gen := social.NewGenerator(client)
	gen.Width, gen.Height = s.cfg.Image.Width, s.cfg.Image.Height
	gen.Background = bg
	gen.Narrative = narrative
	gen.Logger = s.log
	if err := gen.Generate(ctx, f, interactions, s.cfg.Output.Image); err != nil {
		return err
	}
	s.wrote(s.cfg.Output.Image)
	return nil
}

// runDigest writes the HTML digest page when one is configured.
func (s *session) runDigest(input, summaryText, imagePath string) error {
	path := s.cfg.Output.HTML
	if path == "" {
		return nil
	}
	f, interactions, err := s.load(input)
	if err != nil {
		return err
	}

	err = report.WriteHTML(report.Digest{
		FlowName:     f.DisplayName(summary.DefaultFlowName),
		Summary:      summaryText,
		Interactions: interactions,
		GeneratedAt:  time.Now(),
	}, report.HTMLConfig{OutputPath: path, ImagePath: imagePath})
	if err != nil {
		return err
	}
	s.wrote(path)
	return nil
}

func (s *session) runValidate(paths []string, strict bool) error {
	issues := 0
	for _, path := range paths {
		result := validator.Validate(path)
		for _, is := range result.Issues {
			fmt.Fprintln(s.out, is.String())
		}
		s.log.Debug("validated", zap.String("path", path), zap.Any("ruleHits", result.RuleHits))
		fmt.Fprintf(s.out, "%s: %d file(s), %d error(s), %d warning(s)\n",
			path, len(result.Files), result.Count(validator.SeverityError), result.Count(validator.SeverityWarning))
		switch {
		case !result.IsValid():
			logger.Error("%s: %d error(s)", path, result.Count(validator.SeverityError))
		case len(result.Issues) > 0:
			logger.Warn("%s: %d issue(s)", path, len(result.Issues))
		}
		issues += len(result.Issues)
	}

	if strict && issues > 0 {
		return fmt.Errorf("validation found %d issue(s)", issues)
	}
	return nil
}
