package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	commandv1 "github.com/muhammadchandra19/matchbook/internal/domain/command/v1"
	orderbookv1 "github.com/muhammadchandra19/matchbook/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/matchbook/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// generator produces a random but plausible command stream: mostly limit
// orders around a base price, with cancels aimed at orders it entered before.
type generator struct {
	rng         *rand.Rand
	basePrice   int64
	priceSpread int64
	maxSize     int64
	cancelRatio float64
	entered     []string
}

func (g *generator) next() commandv1.Command {
	if len(g.entered) > 0 && g.rng.Float64() < g.cancelRatio {
		i := g.rng.Intn(len(g.entered))
		id := g.entered[i]
		g.entered = append(g.entered[:i], g.entered[i+1:]...)

		// Half of the cancels only shrink the order.
		var size int64
		if g.rng.Float64() < 0.5 {
			size = g.rng.Int63n(g.maxSize) + 1
		}
		return commandv1.Command{Type: commandv1.TypeCancel, OrderID: id, Size: size}
	}

	side := orderbookv1.SideBuy
	if g.rng.Float64() < 0.5 {
		side = orderbookv1.SideSell
	}

	// Buys lean below the base price and sells above, with some overlap so that
	// orders cross.
	offset := g.rng.Int63n(g.priceSpread+1) - g.priceSpread/5
	price := g.basePrice - offset
	if side == orderbookv1.SideSell {
		price = g.basePrice + offset
	}
	if price <= 0 {
		price = g.basePrice
	}

	id := uuid.NewString()
	g.entered = append(g.entered, id)

	return commandv1.Command{
		Type:    commandv1.TypeEnter,
		OrderID: id,
		Side:    side,
		Price:   price,
		Size:    g.rng.Int63n(g.maxSize) + 1,
	}
}

func main() {
	var (
		brokers     = flag.String("brokers", "localhost:9092", "Kafka broker addresses (comma-separated)")
		topic       = flag.String("topic", "commands", "Kafka topic name")
		pair        = flag.String("pair", "BTC-USD", "Pair used as message key")
		delay       = flag.Duration("delay", 100*time.Millisecond, "Delay between sending commands")
		count       = flag.Int("count", 1000, "Number of commands to generate")
		basePrice   = flag.Int64("base-price", 39455, "Base price in ticks")
		priceSpread = flag.Int64("price-spread", 200, "Price spread range in ticks")
		maxSize     = flag.Int64("max-size", 100, "Maximum order size")
		cancelRatio = flag.Float64("cancel-ratio", 0.2, "Share of commands that are cancels")
		seed        = flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	)
	flag.Parse()

	log, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = log.Sync()
	}()

	if *priceSpread < 0 || *maxSize < 1 {
		log.Warn("price-spread must be >= 0 and max-size >= 1")
		os.Exit(2)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(*brokers, ",")...),
		Topic:        *topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
	defer writer.Close()

	gen := &generator{
		rng:         rand.New(rand.NewSource(*seed)),
		basePrice:   *basePrice,
		priceSpread: *priceSpread,
		maxSize:     *maxSize,
		cancelRatio: *cancelRatio,
	}

	log.Info("Sending commands",
		logger.NewField("brokers", *brokers),
		logger.NewField("topic", *topic),
		logger.NewField("count", *count),
		logger.NewField("delay", delay.String()),
		logger.NewField("seed", *seed),
	)

	ctx := context.Background()
	sent := map[commandv1.Type]int{}

	for i := 0; i < *count; i++ {
		cmd := gen.next()

		value, err := cmd.ToBytes()
		if err != nil {
			log.Error(err, logger.NewField("index", i))
			continue
		}

		msg := kafka.Message{
			Key:   []byte(*pair),
			Value: value,
			Time:  time.Now(),
		}
		if err := writer.WriteMessages(ctx, msg); err != nil {
			log.Error(err, logger.NewField("index", i), logger.NewField("orderID", cmd.OrderID))
			continue
		}
		sent[cmd.Type]++

		if (i+1)%100 == 0 || i == *count-1 {
			log.Info("Progress",
				logger.NewField("sent", i+1),
				logger.NewField("type", cmd.Type),
				logger.NewField("orderID", cmd.OrderID),
				logger.NewField("side", cmd.Side),
				logger.NewField("price", cmd.Price),
				logger.NewField("size", cmd.Size),
			)
		}

		if i < *count-1 {
			time.Sleep(*delay)
		}
	}

	log.Info("Summary",
		logger.NewField("enter", sent[commandv1.TypeEnter]),
		logger.NewField("cancel", sent[commandv1.TypeCancel]),
	)
}
