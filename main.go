package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/parsa83esmaeili/Story-Teller/config"
	"github.com/parsa83esmaeili/Story-Teller/document"
	"github.com/parsa83esmaeili/Story-Teller/illustration"
	"github.com/parsa83esmaeili/Story-Teller/pipeline"
	"github.com/parsa83esmaeili/Story-Teller/server"
	"github.com/parsa83esmaeili/Story-Teller/story"
)

func main() {
	configPath := flag.String("config", "config/config.json", "path to config.json")
	prompt := flag.String("prompt", "", "story prompt (one-shot mode; omit for interactive)")
	out := flag.String("out", "story.pdf", "output PDF path")
	imageOut := flag.String("image-out", "", "optional path to also save the illustration")
	serve := flag.Bool("serve", false, "start web server")
	addr := flag.String("addr", "", "http listen address when --serve (overrides config.server_addr)")
	verbose := flag.Bool("v", false, "enable debug logs")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	runner, err := buildRunner(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *serve {
		srv, err := server.New(runner, log.Logger)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		listen := cfg.ServerAddr
		if *addr != "" {
			listen = *addr
		}
		if listen == "" {
			listen = ":8080"
		}
		log.Info().Str("addr", listen).Msg("starting web server")
		if err := http.ListenAndServe(listen, srv.Routes()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	ctx := context.Background()

	if *prompt != "" {
		if err := runOnce(ctx, runner, *prompt, *out, *imageOut); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	repl(ctx, runner, *out, *imageOut)
}

func buildRunner(cfg config.Config) (*pipeline.Runner, error) {
	llm, err := story.NewOpenAILLMFromConfig(&story.LLMSettings{
		Model:  cfg.StoryModel,
		APIKey: cfg.StoryAPIKey,
	})
	if err != nil {
		return nil, err
	}
	writer, err := story.NewWriter(llm)
	if err != nil {
		return nil, err
	}

	ill, err := illustration.NewOpenAIIllustrator(&illustration.Settings{
		Model:   cfg.ImageModel,
		APIKey:  cfg.ImageAPIKey,
		BaseURL: cfg.ImageBaseURL,
	}, nil)
	if err != nil {
		return nil, err
	}

	return pipeline.New(writer, ill, document.NewBuilder(cfg.FontPath), log.Logger)
}

func runOnce(ctx context.Context, runner *pipeline.Runner, prompt, out, imageOut string) error {
	res, err := runner.Run(ctx, prompt)
	if err != nil {
		return err
	}

	fmt.Println(res.Rendered)

	if res.ImageErr != nil {
		log.Warn().Err(res.ImageErr).Msg("the document will not include an illustration")
	} else if imageOut != "" {
		if err := os.WriteFile(imageOut, res.Image, 0o644); err != nil {
			log.Warn().Err(err).Msg("could not save the illustration")
		} else {
			fmt.Printf("Illustration saved to %s\n", imageOut)
		}
	}

	if err := os.WriteFile(out, res.PDF, 0o644); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	fmt.Printf("Story PDF saved to %s\n", out)
	return nil
}

// repl reads prompts from stdin until EOF or an empty line. A failed run
// reports its error and moves on to the next prompt.
func repl(ctx context.Context, runner *pipeline.Runner, out, imageOut string) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nEnter your story prompt (e.g., 'a robot learning to paint'):\n> ")
		if !scanner.Scan() {
			return
		}
		prompt := strings.TrimSpace(scanner.Text())
		if prompt == "" {
			return
		}
		if err := runOnce(ctx, runner, prompt, out, imageOut); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}
