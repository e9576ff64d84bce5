package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/sea-catering/storefront/internal/storefront"
)

// defaultCheckoutURL is the Midtrans sandbox Snap redirect page.
const defaultCheckoutURL = "https://app.sandbox.midtrans.com/snap/v4/redirection/"

// terminalWidget stands in for the hosted checkout: it prints where to pay and
// asks the user what the payment page reported.
type terminalWidget struct {
	checkoutURL string
	in          *bufio.Reader
	out         io.Writer
}

func (w *terminalWidget) Pay(token string, cb storefront.Callbacks) {
	fmt.Fprintf(w.out, "Complete your payment at:\n  %s%s\n", w.checkoutURL, token)
	for {
		fmt.Fprint(w.out, "Payment outcome, [s]uccess, [p]ending, [e]rror or [c]losed: ")
		line, err := w.in.ReadString('\n')
		if err != nil && line == "" {
			cb.OnClose()
			return
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "s", "success":
			cb.OnSuccess(storefront.CheckoutResult{
				TransactionID:     w.ask("Transaction id (optional): "),
				TransactionStatus: "settlement",
			})
			return
		case "p", "pending":
			cb.OnPending(storefront.CheckoutResult{TransactionStatus: "pending"})
			return
		case "e", "error":
			cb.OnError(storefront.CheckoutResult{
				TransactionStatus: "deny",
				StatusMessage:     w.ask("Reason shown by the payment page: "),
			})
			return
		case "c", "closed", "close":
			cb.OnClose()
			return
		}
	}
}

func (w *terminalWidget) ask(label string) string {
	fmt.Fprint(w.out, label)
	line, _ := w.in.ReadString('\n')
	return strings.TrimSpace(line)
}

func (a *app) widget() *terminalWidget {
	url := globalConfig.CheckoutURL
	if url == "" {
		url = defaultCheckoutURL
	}
	return &terminalWidget{checkoutURL: url, in: a.in, out: a.out}
}

func (a *app) handshake(cache *storefront.Cache) *storefront.Handshake {
	return storefront.NewHandshake(a.api, a.widget(), cache, a.logger)
}

func (a *app) dashboard(confirm storefront.Confirmer) *storefront.Dashboard {
	cache := storefront.NewCache()
	return storefront.NewDashboard(a.api, cache, a.handshake(cache), confirm)
}

func (a *app) confirmer(skip bool) storefront.Confirmer {
	return storefront.ConfirmFunc(func(question string) bool {
		if skip {
			return true
		}
		answer := strings.ToLower(prompt(a.in, a.out, question+" [y/N]: "))
		return answer == "y" || answer == "yes"
	})
}
