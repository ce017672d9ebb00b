package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// идентификаторы справочников тестового стенда
const (
	maxCustomerID    = 20
	maxSalespersonID = 5
	maxProductID     = 8
)

var paymentMethods = []string{"PIX", "CASH", "CREDIT_CARD", "DEBIT_CARD", "BANK_SLIP", "ON_ACCOUNT"}

type Item struct {
	ProductID   int64   `json:"product_id"`
	Quantity    int     `json:"quantity"`
	UnitPrice   *string `json:"unit_price,omitempty"`
	ExpiryDate  *string `json:"expiry_date,omitempty"`
	Observation *string `json:"observation,omitempty"`
}

type Order struct {
	CustomerID    int64   `json:"customer_id"`
	SalespersonID int64   `json:"salesperson_id"`
	PaymentMethod *string `json:"payment_method,omitempty"`
	Discount      *string `json:"discount,omitempty"`
	Observation   *string `json:"observation,omitempty"`
	Items         []Item  `json:"items"`
}

func randomID(maxID int) int64 {
	return int64(rand.Intn(maxID) + 1)
}

func generateRandomItem() Item {
	it := Item{
		ProductID: randomID(maxProductID),
		Quantity:  rand.Intn(10) + 1,
	}
	// без цены сервис берёт цену из каталога
	if rand.Intn(2) == 0 {
		price := fmt.Sprintf("%d.%02d", rand.Intn(40)+5, rand.Intn(100))
		it.UnitPrice = &price
	}
	if rand.Intn(3) > 0 {
		expiry := time.Now().AddDate(0, rand.Intn(12)+1, 0).Format(time.DateOnly)
		it.ExpiryDate = &expiry
	}
	return it
}

func generateRandomOrder() Order {
	o := Order{
		CustomerID:    randomID(maxCustomerID),
		SalespersonID: randomID(maxSalespersonID),
	}
	if rand.Intn(2) == 0 {
		method := paymentMethods[rand.Intn(len(paymentMethods))]
		o.PaymentMethod = &method
	}
	if rand.Intn(4) == 0 {
		observation := "entregar pela manhã"
		o.Observation = &observation
	}
	for range rand.Intn(3) + 1 {
		o.Items = append(o.Items, generateRandomItem())
	}
	return o
}

func main() {
	writer := &kafka.Writer{
		Addr:  kafka.TCP("localhost:9092"),
		Topic: "sales-orders",
	}
	defer writer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			order := generateRandomOrder()
			data, _ := json.Marshal(order)
			key := uuid.NewString()
			msg := kafka.Message{Key: []byte(key), Value: data}
			if err := writer.WriteMessages(ctx, msg); err != nil {
				log.Println("failed to write order:", err)
				continue
			}
			// каждое десятое сообщение отправляется повторно, сервис должен его пропустить
			if rand.Intn(10) == 0 {
				writer.WriteMessages(ctx, msg)
			}
			log.Println("order generated", key, "customer", order.CustomerID)
		case <-ctx.Done():
			return
		}
	}
}
