package service

import (
	"context"
	"io"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"github.com/sevenkilo/tracker-backend/internal/app/appconfig"
)

// A4 in inches; swapped for landscape.
const (
	pdfPageWidth  = 11.69
	pdfPageHeight = 8.27
	pdfMargin     = 0.5
)

// chartSettleWait gives Chart.js animations time to finish after the page
// reports stable.
const chartSettleWait = 2 * time.Second

// PDFExporter renders report HTML to PDF through a headless browser. The
// browser is launched lazily on first export and reused afterwards.
type PDFExporter struct {
	bin     string
	timeout time.Duration

	browser *rod.Browser
}

func NewPDFExporter(conf *appconfig.Config, lc fx.Lifecycle) *PDFExporter {
	e := &PDFExporter{
		bin:     conf.ChromiumBin,
		timeout: conf.PDFRenderTimeout,
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return e.Close()
		},
	})
	return e
}

func (e *PDFExporter) connect() (*rod.Browser, error) {
	if e.browser != nil {
		return e.browser, nil
	}

	launch := launcher.New().Headless(true)
	if e.bin != "" {
		launch = launch.Bin(e.bin)
	}
	controlURL, err := launch.Launch()
	if err != nil {
		return nil, errors.Wrap(err, "failed to launch browser")
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, errors.Wrap(err, "failed to connect to browser")
	}
	e.browser = browser
	return browser, nil
}

// RenderHTML renders a self-contained HTML document to an A4 landscape PDF.
// It waits for the page to go network-idle and then a fixed settle period so
// canvas charts finish drawing before print.
func (e *PDFExporter) RenderHTML(ctx context.Context, html string) ([]byte, error) {
	browser, err := e.connect()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	page, err := browser.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open page")
	}
	defer page.Close()

	if err := page.SetDocumentContent(html); err != nil {
		return nil, errors.Wrap(err, "failed to set page content")
	}
	if err := page.WaitIdle(e.timeout); err != nil {
		return nil, errors.Wrap(err, "page never settled")
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(chartSettleWait):
	}

	width := pdfPageWidth
	height := pdfPageHeight
	margin := pdfMargin
	stream, err := page.PDF(&proto.PagePrintToPDF{
		Landscape:       true,
		PrintBackground: true,
		PaperWidth:      &width,
		PaperHeight:     &height,
		MarginTop:       &margin,
		MarginBottom:    &margin,
		MarginLeft:      &margin,
		MarginRight:     &margin,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to print page")
	}

	pdf, err := io.ReadAll(stream)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read pdf stream")
	}
	log.Debug().Int("bytes", len(pdf)).Msg("rendered pdf")
	return pdf, nil
}

// Close shuts the browser down. Wired to the fx lifecycle.
func (e *PDFExporter) Close() error {
	if e.browser == nil {
		return nil
	}
	err := e.browser.Close()
	e.browser = nil
	return err
}
