// Package moodle2pdf replays Moodle quiz export files and saves every quiz
// attempt page as a PDF using headless Chrome.
//
// # Quick Start
//
// Parse a directive file and run it:
//
//	directives, err := moodle2pdf.ParseFile("export.txt", moodle2pdf.ParseOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	exporter := moodle2pdf.NewExporter(
//	    moodle2pdf.WithOutputDir("output"),
//	    moodle2pdf.WithWorkers(4),
//	)
//	res, err := exporter.Execute(ctx, directives)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res.Stats.WriteSummary(os.Stdout)
//
// # Directives
//
// A directive file holds one directive per line, a name and an argument
// separated by the first space:
//
//	zip-name Midterm Exam
//	cookies TW9vZGxlU2Vzc2lvbj1hYmMxMjM=
//	save-pdf https://moodle.example.edu/mod/quiz/review.php?attempt=1
//
// zip-name creates output/Midterm_Exam. cookies carries a base64 Cookie
// header from which the MoodleSession cookie is taken. Each save-pdf renders
// one attempt to output/<quiz>/<n>.pdf, n counting save-pdf lines from 1.
// Lines starting with # are comments; save-text is dropped at parse time.
// Other names are counted as ignored.
//
// # Execution
//
// Directives run strictly in order. The first save-pdf launches one browser,
// visits the site origin and attaches the session cookie. Exports then run on
// a bounded pool of tabs while dispatch continues. Execute waits for every
// export before closing the browser and writing the stats report.
//
// A failed export is counted in Stats.FileErrors and never stops the run.
// Sequence and configuration errors are fatal: exports already started
// finish, the browser is closed and no report is written.
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The default engine, go-rod,
// downloads a managed Chromium on first run (~/.cache/rod/browser/). The
// chromedp engine uses the Chrome found on the system.
//
// The Chrome sandbox is disabled by default. Use ROD_BROWSER_BIN or
// LaunchOptions.Bin to choose a specific binary.
package moodle2pdf
