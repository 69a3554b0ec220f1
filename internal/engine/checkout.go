package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hamidrz1977-bot/jawab-bot/internal/domain"
	"go.uber.org/zap"
)

// checkoutLabel tags the AwaitingAddress context entered from the cart.
const checkoutLabel = "cart"

func (e *Engine) checkout(t *turn) {
	if t.sess.Cart.Empty() {
		t.sess.Pending = domain.PendingContext{}
		t.reply(e.text.Text("cart_empty", t.lang), e.menuKeyboard(t.lang))
		return
	}
	if t.sess.Phone == "" {
		t.sess.Pending = domain.AwaitingPhone()
		t.reply(e.text.Text("need_phone", t.lang), e.phoneKeyboard(t.lang))
		return
	}
	t.sess.Pending = domain.AwaitingAddress(checkoutLabel)
	t.reply(e.text.Text("ask_address", t.lang), e.locationKeyboard(t.lang))
}

// finalizeOrder records the cart as an order. Exactly one of address and loc
// is set.
func (e *Engine) finalizeOrder(t *turn, address string, loc *domain.Location) error {
	if t.sess.Cart.Empty() {
		t.sess.Pending = domain.PendingContext{}
		t.reply(e.text.Text("cart_empty", t.lang), e.menuKeyboard(t.lang))
		return nil
	}

	lines := t.sess.Cart.Snapshot()
	order := domain.NewOrder{
		SessionID:    t.sess.ID,
		ContactPhone: t.sess.Phone,
		ContactName:  t.sess.Name,
		AddressText:  address,
		Lines:        lines,
		Total:        domain.Cart(lines).Total(),
	}
	if loc != nil {
		lat, lon := loc.Latitude, loc.Longitude
		order.Latitude, order.Longitude = &lat, &lon
	}

	id, err := e.repo.CreateOrder(t.ctx, order)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	e.log.Info("order created",
		zap.Int64("order_id", id),
		zap.Int64("chat_id", t.upd.ChatID),
		zap.String("total", order.Total.StringFixed(2)))

	e.notifyAdmins(t, orderSummary("NEW ORDER", domain.Order{
		ID:           id,
		ContactPhone: order.ContactPhone,
		AddressText:  order.AddressText,
		Latitude:     order.Latitude,
		Longitude:    order.Longitude,
		Lines:        order.Lines,
		TotalAmount:  order.Total,
	}, fmt.Sprintf("%s (%d)", orDash(t.sess.Name), t.upd.ChatID)))
	t.sess.Reset()
	t.reply(e.text.Format("order_saved", t.lang, "oid", strconv.FormatInt(id, 10)), e.menuKeyboard(t.lang))
	return nil
}

func orderSummary(title string, o domain.Order, user string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s #%d\n", title, o.ID)
	fmt.Fprintf(&b, "User: %s\n", user)
	fmt.Fprintf(&b, "Phone: %s\n", orDash(o.ContactPhone))
	if o.Latitude != nil && o.Longitude != nil {
		fmt.Fprintf(&b, "Location: %v,%v\n", *o.Latitude, *o.Longitude)
	} else {
		fmt.Fprintf(&b, "Address: %s\n", o.AddressText)
	}
	b.WriteString("Items:\n")
	for _, l := range o.Lines {
		fmt.Fprintf(&b, "- %s x%d — %s\n", l.DisplayName, l.Quantity, money(l.Subtotal()))
	}
	fmt.Fprintf(&b, "Total: %s", money(o.TotalAmount))
	return b.String()
}

func (e *Engine) notifyAdmins(t *turn, text string) {
	for _, a := range e.cfg.Admins {
		id, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			e.log.Warn("skipping malformed admin id", zap.String("admin", a))
			continue
		}
		t.send(id, text)
	}
}
