package textlog

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"storefront/pkg/order"
)

const (
	headerPrefix = "[LOG] -> Order ID: "
	headerMiddle = " has been successfully checked out and paid using "
	totalPrefix  = "Total Amount: $"
)

// ErrUnencodable indicates an order field that would break the line format.
var ErrUnencodable = errors.New("order cannot be encoded")

// Encode renders o as one log block:
//
//	[LOG] -> Order ID: <id> has been successfully checked out and paid using <method>.
//	<product id>\t<name>\t<price>\t<quantity>
//	Total Amount: $<total>
//	<blank line>
func Encode(o order.Order) ([]byte, error) {
	if err := checkField("order id", o.ID); err != nil {
		return nil, err
	}
	if strings.Contains(o.ID, headerMiddle) {
		return nil, fmt.Errorf("%w: order id contains the header separator", ErrUnencodable)
	}
	if err := checkField("payment method", o.PaymentMethod); err != nil {
		return nil, err
	}

	var b bytes.Buffer
	b.WriteString(headerPrefix + o.ID + headerMiddle + o.PaymentMethod + ".\n")
	for _, l := range o.Lines {
		if err := checkField("product name", l.Name); err != nil {
			return nil, err
		}
		fmt.Fprintf(&b, "%d\t%s\t%s\t%d\n", l.ProductID, l.Name, l.Price.StringFixed(2), l.Quantity)
	}
	b.WriteString(totalPrefix + o.Total.StringFixed(2) + "\n\n")
	return b.Bytes(), nil
}

func checkField(name, v string) error {
	if v == "" {
		return fmt.Errorf("%w: empty %s", ErrUnencodable, name)
	}
	if strings.ContainsAny(v, "\t\r\n") {
		return fmt.Errorf("%w: %s %q contains a tab or line break", ErrUnencodable, name, v)
	}
	return nil
}

// Decode reads every order block from r, oldest first. Parsing is best
// effort: malformed item lines are skipped, and a block without a total line
// gets the sum of its lines.
func Decode(r io.Reader) ([]order.Order, error) {
	var (
		orders   []order.Order
		cur      *order.Order
		hasTotal bool
	)
	flush := func() {
		if cur == nil {
			return
		}
		if !hasTotal {
			cur.Total = sumLines(cur.Lines)
		}
		orders = append(orders, *cur)
		cur = nil
	}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		switch {
		case strings.HasPrefix(line, headerPrefix):
			flush()
			id, method, ok := parseHeader(line)
			if !ok {
				continue
			}
			cur = &order.Order{ID: id, PaymentMethod: method}
			hasTotal = false
		case cur == nil:
			// Outside a block.
		case line == "":
			flush()
		case strings.HasPrefix(line, totalPrefix):
			if total, err := decimal.NewFromString(strings.TrimPrefix(line, totalPrefix)); err == nil {
				cur.Total = total
				hasTotal = true
			}
		default:
			if l, ok := parseLine(line); ok {
				cur.Lines = append(cur.Lines, l)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()
	return orders, nil
}

func parseHeader(line string) (id, method string, ok bool) {
	rest := strings.TrimPrefix(line, headerPrefix)
	id, method, ok = strings.Cut(rest, headerMiddle)
	if !ok || id == "" {
		return "", "", false
	}
	return id, strings.TrimSuffix(method, "."), true
}

func parseLine(line string) (order.Line, bool) {
	fields := strings.Split(line, "\t")
	if len(fields) != 4 {
		return order.Line{}, false
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return order.Line{}, false
	}
	price, err := decimal.NewFromString(fields[2])
	if err != nil {
		return order.Line{}, false
	}
	qty, err := strconv.Atoi(fields[3])
	if err != nil {
		return order.Line{}, false
	}
	return order.Line{ProductID: id, Name: fields[1], Price: price, Quantity: qty}, true
}

func sumLines(lines []order.Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}
