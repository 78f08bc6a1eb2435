package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"school-store/internal/client"
	"school-store/internal/domain/dto"

	"github.com/google/uuid"
)

func main() {
	baseURL := flag.String("url", envOr("STORE_URL", "http://localhost:8080/api"), "base URL of the store API")
	flag.Parse()

	api, err := client.New(*baseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create client:", err)
		os.Exit(1)
	}

	ctx := context.Background()
	session := client.NewSession(api)
	in := bufio.NewScanner(os.Stdin)

	fmt.Println("school store,", *baseURL)

	username := prompt(in, "username: ")
	password := prompt(in, "password: ")

	if err := session.LogIn(ctx, username, password); err != nil {
		fmt.Fprintln(os.Stderr, "login failed:", err)
		os.Exit(1)
	}

	user, _ := session.User()
	fmt.Printf("welcome, %s %s (%s)\n", user.FirstName, user.LastName, user.Role)

	switch session.Screen() {
	case client.ScreenTeacherHome:
		teacherLoop(ctx, in, api, session)
	case client.ScreenStudentHome:
		studentLoop(ctx, in, api, session)
	default:
		fmt.Fprintln(os.Stderr, "not logged in")
		os.Exit(1)
	}

	if err := session.LogOut(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "logout:", err)
	}
}

func studentLoop(ctx context.Context, in *bufio.Scanner, api *client.Client, session *client.Session) {
	cart := client.NewCart()
	committer := client.NewCommitter(api, session, cart)

	snapshot, err := client.LoadDashboard(ctx, api)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load dashboard:", err)
		return
	}
	items := snapshot.Items
	fmt.Printf("balance: %d points, %d items in the store\n", snapshot.User.PointsBalance, len(items))

	for {
		cmd, args := readCommand(in, "store> ")
		switch cmd {
		case "items":
			items, err = api.ListItems(ctx)
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			printItems(items)

		case "add":
			if len(args) < 2 {
				fmt.Println("usage: add <item#> <size>")
				continue
			}
			idx, convErr := strconv.Atoi(args[0])
			if convErr != nil || idx < 1 || idx > len(items) {
				fmt.Println("no such item; run 'items' first")
				continue
			}
			line, addErr := cart.Add(items[idx-1], args[1])
			if addErr != nil {
				fmt.Println("error:", addErr)
				continue
			}
			fmt.Printf("added %s (%s) for %d points\n", line.ItemName, line.Size, line.Price)

		case "cart":
			printCart(cart)

		case "remove":
			if len(args) < 1 {
				fmt.Println("usage: remove <line#>")
				continue
			}
			idx, convErr := strconv.Atoi(args[0])
			lines := cart.Lines()
			if convErr != nil || idx < 1 || idx > len(lines) {
				fmt.Println("no such line")
				continue
			}
			cart.Remove(lines[idx-1].ID)
			fmt.Println("removed")

		case "buy":
			result, buyErr := committer.Purchase(ctx)
			if buyErr != nil {
				fmt.Println("error:", buyErr)
			}
			printResult(result)
			fmt.Printf("balance: %d points\n", session.Balance())

		case "purchases":
			page, listErr := api.ListPurchases(ctx, 1)
			if listErr != nil {
				fmt.Println("error:", listErr)
				continue
			}
			for _, p := range page.Purchases {
				fmt.Printf("  %s  %s x%d  -%d points\n", p.CreatedAt.Format("2006-01-02"), p.Size, p.Quantity, p.TotalCost)
			}

		case "balance":
			if refreshErr := session.Refresh(ctx); refreshErr != nil {
				fmt.Println("error:", refreshErr)
				continue
			}
			fmt.Printf("balance: %d points\n", session.Balance())

		case "quit", "exit", "logout":
			return

		default:
			fmt.Println("commands: items, add, cart, remove, buy, purchases, balance, quit")
		}
	}
}

func teacherLoop(ctx context.Context, in *bufio.Scanner, api *client.Client, session *client.Session) {
	awards := client.NewAwardFlow(api)
	var roster []dto.UserDTO

	for {
		cmd, args := readCommand(in, "teacher> ")
		switch cmd {
		case "roster":
			users, err := api.ListUsers(ctx)
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			roster = client.FilterUsersByRole(users, "student")
			if len(args) > 0 {
				roster = client.FilterUsers(roster, strings.Join(args, " "))
			}
			roster = client.SortUsers(roster, client.SortByLastName, true)
			for i, u := range roster {
				fmt.Printf("  %d. %s %s (%s)  %d points\n", i+1, u.FirstName, u.LastName, u.Username, u.PointsBalance)
			}

		case "award":
			if len(args) < 3 {
				fmt.Println("usage: award <student#[,student#...]> <amount> <reason>")
				continue
			}
			ids, ok := pickStudents(roster, args[0])
			if !ok {
				fmt.Println("no such student; run 'roster' first")
				continue
			}
			amount, convErr := strconv.Atoi(args[1])
			if convErr != nil {
				fmt.Println("amount must be a number")
				continue
			}
			summary, awardErr := awards.Award(ctx, ids, amount, strings.Join(args[2:], " "))
			if awardErr != nil {
				fmt.Println("error:", awardErr)
				continue
			}
			fmt.Printf("awarded %d students\n", summary.Awarded)
			for _, failure := range summary.Failed {
				fmt.Printf("  failed %s: %s\n", failure.UserID, failure.Message)
			}

		case "leaderboard":
			board, err := api.Leaderboard(ctx, 10)
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			for _, entry := range board {
				fmt.Printf("  %d. %s %s  %d points\n", entry.Rank, entry.FirstName, entry.LastName, entry.PointsBalance)
			}

		case "items":
			items, err := api.ListItems(ctx)
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			printItems(items)

		case "transactions":
			page, err := api.ListTransactions(ctx, 1)
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			for _, tx := range page.Transactions {
				fmt.Printf("  %s  %s %d  %s\n", tx.CreatedAt.Format("2006-01-02"), tx.TransactionType, tx.Amount, tx.Reason)
			}

		case "quit", "exit", "logout":
			return

		default:
			fmt.Println("commands: roster [query], award, leaderboard, items, transactions, quit")
		}
	}
}

func pickStudents(roster []dto.UserDTO, arg string) ([]uuid.UUID, bool) {
	var ids []uuid.UUID
	for _, raw := range strings.Split(arg, ",") {
		idx, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || idx < 1 || idx > len(roster) {
			return nil, false
		}
		ids = append(ids, roster[idx-1].ID)
	}
	return ids, true
}

func printItems(items []dto.ItemDTO) {
	for i, item := range items {
		sizes := make([]string, 0, len(item.AvailableSizes))
		for _, s := range item.AvailableSizes {
			sizes = append(sizes, fmt.Sprintf("%s=%d", s, item.SizePricing[s]))
		}
		fmt.Printf("  %d. %s [%s] (%s)\n", i+1, item.Name, strings.Join(sizes, " "), item.Category)
	}
}

func printCart(cart *client.Cart) {
	for i, line := range cart.Lines() {
		fmt.Printf("  %d. %s (%s)  %d points\n", i+1, line.ItemName, line.Size, line.Price)
	}
	fmt.Printf("  total: %d points\n", cart.Total())
}

func printResult(result client.PurchaseResult) {
	switch result.Outcome {
	case client.OutcomeSuccess:
		fmt.Printf("purchased %d items\n", len(result.Purchased))
	case client.OutcomePartial:
		fmt.Printf("purchased %d items, %d still in the cart:\n", len(result.Purchased), len(result.Failed))
		for _, failure := range result.Failed {
			fmt.Printf("  %s (%s): %s\n", failure.Line.ItemName, failure.Line.Size, failure.Message)
		}
	case client.OutcomeFailure:
		fmt.Println("nothing purchased:")
		for _, failure := range result.Failed {
			fmt.Printf("  %s (%s): %s\n", failure.Line.ItemName, failure.Line.Size, failure.Message)
		}
	default:
		fmt.Println(result.Reason)
	}
}

func readCommand(in *bufio.Scanner, promptText string) (string, []string) {
	line := prompt(in, promptText)
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}

func prompt(in *bufio.Scanner, text string) string {
	fmt.Print(text)
	if !in.Scan() {
		return "quit"
	}
	return strings.TrimSpace(in.Text())
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
