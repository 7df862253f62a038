package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/yedell/color-challenge/internal/app"
	"github.com/yedell/color-challenge/internal/config"
	"github.com/yedell/color-challenge/internal/input"
	"github.com/yedell/color-challenge/internal/logger"
)

func main() {
	count := flag.Int("count", 0, "number of images to generate (0 = ask)")
	width := flag.Int("width", 0, "image width in pixels (0 = ask)")
	height := flag.Int("height", 0, "image height in pixels (0 = ask)")
	renderer := flag.String("renderer", "", "opencv or raster")
	headless := flag.Bool("headless", false, "do not open a window")
	httpAddr := flag.String("http", "", "serve the web mirror on this address")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *count > 0 {
		cfg.ImageCount = *count
	}
	if *width > 0 {
		cfg.Width = *width
	}
	if *height > 0 {
		cfg.Height = *height
	}
	if *renderer != "" {
		cfg.Renderer = strings.ToLower(*renderer)
	}
	if *headless {
		cfg.ShowWindow = false
	}
	if *httpAddr != "" {
		cfg.HTTPAddr = *httpAddr
	}

	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	fmt.Println("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	fmt.Println("<     Random Image Creator & Viewer     >")
	fmt.Println("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	fmt.Println()

	stdin := bufio.NewReader(os.Stdin)
	prompts := []struct {
		value  *int
		prompt string
	}{
		{&cfg.ImageCount, "Enter number of images to generate: "},
		{&cfg.Width, "Enter number of pixels for image width: "},
		{&cfg.Height, "Enter number of pixels for image height: "},
	}
	for _, p := range prompts {
		if *p.value > 0 {
			continue
		}
		if *p.value, err = input.Int(stdin, os.Stdout, p.prompt, 1); err != nil {
			log.Fatalf("Failed to read input: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApp(cfg, logger, stdin)
	if err != nil {
		log.Fatalf("Failed to start viewer: %v", err)
	}
	defer application.Close()

	if cfg.HTTPAddr != "" {
		fmt.Printf("🌐 Web mirror: http://%s\n", cfg.HTTPAddr)
	}
	fmt.Printf("🎨 Session %s: %d image(s) of %dx%d\n", application.SessionID(), cfg.ImageCount, cfg.Width, cfg.Height)

	res, err := application.Run(ctx)
	fmt.Println(strings.Repeat("-", 58))
	fmt.Printf("Stopped on %s: generated %d, displayed %d, flushed %d\n", res.Reason, res.Generated, res.Displayed, res.Drained)
	fmt.Println(strings.Repeat("_", 58))
	if err != nil {
		logger.Error("Viewer stopped with error: %v", err)
		application.Close()
		logger.Close()
		os.Exit(1)
	}
}
