// Package browser wraps chromedp in the narrow surface the scraper
// needs: open a headless tab, navigate, read rendered markup, run
// injected script, and wait for a selector with a bounded timeout.
//
// The site only reveals its chapter playlist through script running in
// the page, so a real browser is required; a plain HTTP fetch of the
// page is not enough.
//
//	sess, err := browser.NewSession(ctx, settings)
//	if err != nil {
//	    return err
//	}
//	defer sess.Close()
//
//	sess.Navigate(url)
//	sess.RunScript(hook)
//	text, err := sess.WaitText("#playlist", 60*time.Second)
package browser
