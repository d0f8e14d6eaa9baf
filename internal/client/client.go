// Package client is the interactive text-menu front end. It only parses
// input, calls the core and prints results; every business rule lives
// behind the directory, engine and admin packages, so this layer is
// swappable for any other presentation.
package client

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"atmbank/internal/account"
	"atmbank/internal/admin"
	"atmbank/internal/directory"
	"atmbank/internal/engine"
)

// Client drives the menu loop over a reader/writer pair.
type Client struct {
	dir *directory.Directory
	eng *engine.Engine
	adm *admin.Service
	in  *bufio.Scanner
	out io.Writer
	log *zap.SugaredLogger
}

// New builds a client over the core services.
func New(dir *directory.Directory, eng *engine.Engine, adm *admin.Service, in io.Reader, out io.Writer, log *zap.SugaredLogger) *Client {
	return &Client{
		dir: dir,
		eng: eng,
		adm: adm,
		in:  bufio.NewScanner(in),
		out: out,
		log: log,
	}
}

// Run shows the main menu until the user exits or input ends.
func (c *Client) Run() {
	for {
		c.printf("ATM Main Menu\n (1) Login\n (2) Create Account\n (3) Exit\nEnter an option: ")
		choice, ok := c.readLine()
		if !ok {
			return
		}
		switch choice {
		case "1":
			c.login()
		case "2":
			c.createAccount()
		case "3":
			return
		default:
			c.printf("\nPlease enter one of the given options.\n\n")
		}
	}
}

func (c *Client) login() {
	number, ok := c.promptInt("\nEnter your account number: #")
	if !ok {
		return
	}
	pinText, ok := c.prompt("Enter your account PIN: ")
	if !ok {
		return
	}
	acct, err := c.dir.Lookup(number, pinText)
	if err != nil {
		c.printf("\n%s\n\n", err)
		return
	}
	c.log.Infow("login", "account", acct.Number())
	if acct.Kind() == account.KindAdmin {
		c.adminMenu(acct)
	} else {
		c.accountMenu(acct)
	}
}

func (c *Client) createAccount() {
	kindText, ok := c.prompt("\nWould you like to create a basic account or a savings account?: ")
	if !ok {
		return
	}
	var kind account.Kind
	switch strings.ToLower(strings.TrimSpace(kindText)) {
	case "basic account", "basic":
		kind = account.KindBasic
	case "savings account", "savings":
		kind = account.KindInterest
	default:
		c.printf("\nPlease specify the type of account you would like to create.\n\n")
		return
	}

	rate := decimal.Zero
	if kind == account.KindInterest {
		r, ok := c.promptDecimal("Please enter the interest rate for your account: %")
		if !ok {
			return
		}
		rate = r
	}
	name, ok := c.prompt("Enter your name: ")
	if !ok {
		return
	}
	pinText, ok := c.prompt("Create an account PIN: ")
	if !ok {
		return
	}
	confirm, ok := c.prompt("Confirm your account PIN: ")
	if !ok {
		return
	}
	balance, ok := c.promptDecimal("Enter your starting balance: $")
	if !ok {
		return
	}

	acct, err := c.dir.Open(kind, name, pinText, confirm, balance, rate)
	if err != nil {
		c.printf("\n%s\n\n", err)
		return
	}
	c.printf("\nAccount created. Your account number is #%d.\n\n", acct.Number())
}

func (c *Client) accountMenu(acct *account.Account) {
	for {
		c.printf("Account Menu\n (1) Deposit\n (2) Withdraw\n (3) Transfer\n (4) Check Balance\n (5) Account Options\n (6) Logout\nEnter an option: ")
		choice, ok := c.readLine()
		if !ok {
			return
		}
		switch choice {
		case "1":
			if amount, ok := c.promptDecimal("\nEnter the amount you want to deposit: $"); ok {
				c.report(c.eng.Deposit(acct, amount), "Deposit complete.")
			}
		case "2":
			if amount, ok := c.promptDecimal("\nEnter the amount you want to withdraw: $"); ok {
				c.report(c.eng.Withdraw(acct, amount), "Withdrawal complete.")
			}
		case "3":
			c.transfer(acct)
		case "4":
			_, display, err := c.eng.Balance(acct)
			if err != nil {
				c.printf("\n%s\n\n", err)
			} else {
				c.printf("\nYour account balance is %s.\n\n", display)
			}
		case "5":
			if done := c.accountOptions(acct); done {
				return
			}
		case "6":
			return
		default:
			c.printf("\nPlease enter one of the given options.\n\n")
		}
	}
}

func (c *Client) transfer(acct *account.Account) {
	toNumber, ok := c.promptInt("\nEnter the account number that you want to transfer to: #")
	if !ok {
		return
	}
	amount, ok := c.promptDecimal("Enter the amount that you want to transfer: $")
	if !ok {
		return
	}
	if err := c.eng.Transfer(acct, toNumber, amount); err != nil {
		c.printf("\n%s\n\n", err)
		return
	}
	c.printf("\nTransferred money from your account to account #%d.\n\n", toNumber)
}

// accountOptions returns true when the account was closed and the session
// must end.
func (c *Client) accountOptions(acct *account.Account) bool {
	for {
		c.printf("\nAccount Options\n (1) Change PIN\n (2) View Account History\n (3) Close Account\n (4) Back\nEnter an option: ")
		choice, ok := c.readLine()
		if !ok {
			return false
		}
		switch choice {
		case "1":
			c.changePIN(acct)
		case "2":
			c.printf("\n")
			for _, entry := range acct.History() {
				c.printf("%s\n", entry)
			}
			c.printf("\n")
		case "3":
			if c.closeAccount(acct) {
				return true
			}
		case "4":
			c.printf("\n")
			return false
		default:
			c.printf("\nPlease enter one of the given options.\n")
		}
	}
}

func (c *Client) changePIN(acct *account.Account) {
	current, ok := c.prompt("\nEnter your current PIN: ")
	if !ok {
		return
	}
	newPin, ok := c.prompt("Create your new PIN: ")
	if !ok {
		return
	}
	confirm, ok := c.prompt("Confirm your new PIN: ")
	if !ok {
		return
	}
	c.report(acct.ChangePIN(current, newPin, confirm), "PIN changed.")
}

func (c *Client) closeAccount(acct *account.Account) bool {
	answer, ok := c.prompt("\nAre you sure you want to close your account?\nType \"YES\" to confirm: ")
	if !ok || answer != "YES" {
		return false
	}
	pinText, ok := c.prompt("Enter your PIN to complete your account closure: ")
	if !ok {
		return false
	}
	if err := c.dir.Close(acct.Number(), pinText); err != nil {
		c.printf("\n%s\n\n", err)
		return false
	}
	c.printf("\nAccount closed.\n\n")
	return true
}

func (c *Client) adminMenu(acting *account.Account) {
	for {
		c.printf("Admin Menu\n (1) Create Account\n (2) Edit Account\n (3) Delete Account\n (4) List Accounts\n (5) View My History\n (6) Logout\nEnter an option: ")
		choice, ok := c.readLine()
		if !ok {
			return
		}
		switch choice {
		case "1":
			c.adminCreate(acting)
		case "2":
			c.adminEdit(acting)
		case "3":
			if number, ok := c.promptInt("\nEnter the account number to delete: #"); ok {
				c.report(c.adm.DeleteAccount(acting, number), "Account deleted.")
			}
		case "4":
			c.listAccounts(acting)
		case "5":
			c.printf("\n")
			for _, entry := range acting.History() {
				c.printf("%s\n", entry)
			}
			c.printf("\n")
		case "6":
			return
		default:
			c.printf("\nPlease enter one of the given options.\n\n")
		}
	}
}

func (c *Client) adminCreate(acting *account.Account) {
	kindText, ok := c.prompt("\nAccount type (basic, savings, admin): ")
	if !ok {
		return
	}
	var kind account.Kind
	switch strings.ToLower(strings.TrimSpace(kindText)) {
	case "basic":
		kind = account.KindBasic
	case "savings":
		kind = account.KindInterest
	case "admin":
		kind = account.KindAdmin
	default:
		c.printf("\nPlease specify the type of account you would like to create.\n\n")
		return
	}
	name, ok := c.prompt("Account holder name: ")
	if !ok {
		return
	}
	pinText, ok := c.prompt("Account PIN: ")
	if !ok {
		return
	}
	confirm, ok := c.prompt("Confirm PIN: ")
	if !ok {
		return
	}
	balance := decimal.Zero
	rate := decimal.Zero
	if kind.HoldsMoney() {
		if balance, ok = c.promptDecimal("Starting balance: $"); !ok {
			return
		}
	}
	if kind == account.KindInterest {
		if rate, ok = c.promptDecimal("Interest rate: %"); !ok {
			return
		}
	}
	number, err := c.adm.CreateAccount(acting, kind, name, pinText, confirm, balance, rate)
	if err != nil {
		c.printf("\n%s\n\n", err)
		return
	}
	c.printf("\nAccount created. The account number is #%d.\n\n", number)
}

func (c *Client) adminEdit(acting *account.Account) {
	number, ok := c.promptInt("\nEnter the account number to edit: #")
	if !ok {
		return
	}
	c.printf("Edit Account\n (1) Name\n (2) PIN\n (3) History\n (4) Balance\n (5) Interest Rate\nEnter an option: ")
	choice, ok := c.readLine()
	if !ok {
		return
	}
	switch choice {
	case "1":
		if name, ok := c.prompt("New name: "); ok {
			c.report(c.adm.EditName(acting, number, name), "Name changed.")
		}
	case "2":
		newPin, ok := c.prompt("New PIN: ")
		if !ok {
			return
		}
		confirm, ok := c.prompt("Confirm PIN: ")
		if !ok {
			return
		}
		c.report(c.adm.EditPIN(acting, number, newPin, confirm), "PIN changed.")
	case "3":
		if note, ok := c.prompt("History note: "); ok {
			c.report(c.adm.EditHistory(acting, number, note), "History note added.")
		}
	case "4":
		if balance, ok := c.promptDecimal("New balance: $"); ok {
			c.report(c.adm.EditBalance(acting, number, balance), "Balance changed.")
		}
	case "5":
		if rate, ok := c.promptDecimal("New interest rate: %"); ok {
			c.report(c.adm.EditInterestRate(acting, number, rate), "Interest rate changed.")
		}
	default:
		c.printf("\nPlease enter one of the given options.\n\n")
	}
}

func (c *Client) listAccounts(acting *account.Account) {
	list, err := c.adm.ListAccounts(acting)
	if err != nil {
		c.printf("\n%s\n\n", err)
		return
	}
	c.printf("\n%d account(s) in the system.\n", len(list))
	for _, s := range list {
		if s.Kind.HoldsMoney() {
			c.printf("#%d  %s  %s  balance %s\n", s.Number, s.Kind, s.Name, s.Balance.StringFixed(2))
		} else {
			c.printf("#%d  %s  %s\n", s.Number, s.Kind, s.Name)
		}
	}
	c.printf("\n")
}

func (c *Client) report(err error, success string) {
	if err != nil {
		c.printf("\n%s\n\n", err)
		return
	}
	c.printf("\n%s\n\n", success)
}

func (c *Client) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Client) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *Client) prompt(msg string) (string, bool) {
	c.printf("%s", msg)
	return c.readLine()
}

func (c *Client) promptInt(msg string) (int, bool) {
	text, ok := c.prompt(msg)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		c.printf("\nPlease enter a number.\n\n")
		return 0, false
	}
	return n, true
}

func (c *Client) promptDecimal(msg string) (decimal.Decimal, bool) {
	text, ok := c.prompt(msg)
	if !ok {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		c.printf("\nPlease enter an amount.\n\n")
		return decimal.Decimal{}, false
	}
	return d, true
}
