package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/apexitsupply/apex-backend/internal/quotecart"
	"github.com/apexitsupply/apex-backend/internal/quotedesk"
	"github.com/apexitsupply/apex-backend/internal/quoteform"
	"github.com/apexitsupply/apex-backend/internal/quotegateway"
)

// terminalNotifier prints cart messages inline, the way the storefront
// surfaces its toast notifications.
type terminalNotifier struct{}

func (terminalNotifier) Notify(message string) {
	fmt.Println(">>", message)
}

func defaultCartPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "quote-cart.json"
	}
	return filepath.Join(home, ".apex", "quote-cart.json")
}

func main() {
	_ = godotenv.Load()

	apiURL := flag.String("api", envOr("APEX_API_URL", "http://localhost:8080"), "quote service base URL")
	cartPath := flag.String("cart", defaultCartPath(), "cart snapshot path")
	flag.Parse()

	gateway, err := quotegateway.NewClient(*apiURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid api url:", err)
		os.Exit(1)
	}

	store := quotecart.NewStore(quotecart.NewFilePersistence(*cartPath), terminalNotifier{})
	app, err := quotedesk.NewApp(store, gateway)
	if err != nil {
		fmt.Fprintln(os.Stderr, "start quote desk:", err)
		os.Exit(1)
	}

	fmt.Println("quote desk — type 'help' for commands")
	if badge := app.Badge(); badge != "" {
		fmt.Println(badge)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		args := strings.Fields(line)
		if done := dispatch(app, args[0], args[1:]); done {
			return
		}
	}
}

func dispatch(app *quotedesk.App, cmd string, args []string) bool {
	switch cmd {
	case "help":
		printHelp()
	case "add":
		cmdAdd(app, args)
	case "remove":
		cmdRemove(app, args)
	case "qty":
		cmdQuantity(app, args)
	case "cart":
		cmdCart(app)
	case "clear":
		app.Cart().Clear()
	case "load":
		app.LoadCartRows()
		fmt.Print(app.Summary())
	case "row":
		cmdGuestRow(app, args)
	case "rows":
		fmt.Print(app.Summary())
	case "rm-row":
		if len(args) != 1 {
			fmt.Println("usage: rm-row <ref>")
			return false
		}
		app.RemoveRow(args[0])
	case "contact":
		cmdContact(app, args)
	case "submit":
		cmdSubmit(app)
	case "subscribe":
		cmdSubscribe(app, args)
	case "badge":
		if badge := app.Badge(); badge != "" {
			fmt.Println(badge)
		} else {
			fmt.Println("(cart empty)")
		}
	case "quit", "exit":
		return true
	default:
		fmt.Println("unknown command; type 'help'")
	}
	return false
}

func printHelp() {
	fmt.Println(`commands:
  add <id> <price> <name...>       add a catalog product to the cart
  remove <id>                      drop a cart line
  qty <id> <n>                     set a cart line quantity (0 removes)
  cart                             list cart lines
  clear                            empty the cart
  load                             copy the cart into the quote form
  row <qty> <price> <descr...>     add a free-text form row
  rows                             show the quote form
  rm-row <ref>                     remove a form row by its ref
  contact <name> <email> [urgency] set the customer fields
  submit                           send the quote request
  subscribe <email>                join the newsletter
  badge                            show the cart badge
  quit`)
}

func cmdAdd(app *quotedesk.App, args []string) {
	if len(args) < 3 {
		fmt.Println("usage: add <id> <price> <name...>")
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		fmt.Println("invalid product id:", args[0])
		return
	}
	price, err := decimal.NewFromString(args[1])
	if err != nil {
		fmt.Println("invalid price:", args[1])
		return
	}
	app.Cart().AddItem(quotecart.Product{
		ID:    id,
		Name:  strings.Join(args[2:], " "),
		Price: price,
	})
}

func cmdRemove(app *quotedesk.App, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: remove <id>")
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Println("invalid product id:", args[0])
		return
	}
	app.Cart().RemoveItem(id)
}

func cmdQuantity(app *quotedesk.App, args []string) {
	if len(args) != 2 {
		fmt.Println("usage: qty <id> <n>")
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Println("invalid product id:", args[0])
		return
	}
	qty, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Println("invalid quantity:", args[1])
		return
	}
	app.Cart().UpdateQuantity(id, qty)
}

func cmdCart(app *quotedesk.App) {
	items := app.Cart().Items()
	if len(items) == 0 {
		fmt.Println("(cart empty)")
		return
	}
	for _, item := range items {
		fmt.Printf("%6d  %-40s x%-3d @ %s\n", item.ID, item.Name, item.Quantity, item.Price.StringFixed(2))
	}
	fmt.Printf("total: %s\n", app.Cart().TotalValue().StringFixed(2))
}

func cmdGuestRow(app *quotedesk.App, args []string) {
	if len(args) < 3 {
		fmt.Println("usage: row <qty> <price> <description...>")
		return
	}
	ref := app.AddGuestRow(strings.Join(args[2:], " "), args[0], args[1])
	fmt.Println("added row", ref)
}

func cmdContact(app *quotedesk.App, args []string) {
	if len(args) < 2 {
		fmt.Println("usage: contact <name> <email> [urgency]")
		return
	}
	contact := quoteform.Contact{
		CustomerName: args[0],
		Email:        args[1],
	}
	if len(args) > 2 {
		contact.Urgency = args[2]
	}
	app.SetContact(contact)
}

func cmdSubmit(app *quotedesk.App) {
	receipt, err := app.Submit(context.Background())
	if err != nil {
		reportSubmitError(err)
		return
	}
	fmt.Printf("quote #%d accepted: %s\n", receipt.QuoteID, receipt.Message)
}

func reportSubmitError(err error) {
	var connErr *quotegateway.ConnectivityError
	var appErr *quotegateway.ApplicationError
	var formatErr *quotegateway.FormatError
	switch {
	case errors.Is(err, quotedesk.ErrSubmitInFlight):
		fmt.Println("a submission is already running")
	case errors.As(err, &connErr):
		fmt.Println("network problem, nothing was sent:", connErr.Err)
	case errors.As(err, &appErr):
		fmt.Printf("the quote service rejected the request (%d): %s\n", appErr.StatusCode, appErr.Error())
	case errors.As(err, &formatErr):
		fmt.Println("the quote service replied in an unexpected format; the request may have been recorded")
	default:
		fmt.Println("submit failed:", err)
	}
}

func cmdSubscribe(app *quotedesk.App, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: subscribe <email>")
		return
	}
	message, err := app.Gateway().SubscribeNewsletter(context.Background(), args[0])
	if err != nil {
		fmt.Println("subscribe failed:", err)
		return
	}
	fmt.Println(message)
}

func envOr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
