package api

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	mb "github.com/saeidalz13/battleship-cpu/models/battleship"
)

const instrumentationName = "github.com/saeidalz13/battleship-cpu/api"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Instruments of the play surface. They report to the global
// meter provider, which is a no-op unless one is installed.
type gameMetrics struct {
	gamesCreated  metric.Int64Counter
	guesses       metric.Int64Counter
	gamesFinished metric.Int64Counter
}

func newGameMetrics(m metric.Meter, countSessions func() int) (gameMetrics, error) {
	var (
		gm  gameMetrics
		err error
	)

	gm.gamesCreated, err = m.Int64Counter(
		"battleship.games.created",
		metric.WithDescription("Games created, rematches included"),
	)
	if err != nil {
		return gm, fmt.Errorf("failed to create games created counter: %w", err)
	}

	gm.guesses, err = m.Int64Counter(
		"battleship.guesses",
		metric.WithDescription("Accepted guesses by side and outcome"),
	)
	if err != nil {
		return gm, fmt.Errorf("failed to create guesses counter: %w", err)
	}

	gm.gamesFinished, err = m.Int64Counter(
		"battleship.games.finished",
		metric.WithDescription("Finished games by winner"),
	)
	if err != nil {
		return gm, fmt.Errorf("failed to create games finished counter: %w", err)
	}

	_, err = m.Int64ObservableGauge(
		"battleship.sessions.active",
		metric.WithDescription("Sessions currently held by the server"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(int64(countSessions()))
			return nil
		}),
	)
	if err != nil {
		return gm, fmt.Errorf("failed to create active sessions gauge: %w", err)
	}

	return gm, nil
}

func (gm gameMetrics) recordGameCreated(difficulty uint8) {
	if gm.gamesCreated == nil {
		return
	}
	gm.gamesCreated.Add(context.Background(), 1,
		metric.WithAttributes(attribute.Int("difficulty", int(difficulty))))
}

func (gm gameMetrics) recordGuess(side mb.Side, result mb.GuessResult) {
	if gm.guesses == nil {
		return
	}
	gm.guesses.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("side", side.String()),
		attribute.String("type", string(result.Type)),
		attribute.Bool("sunk", result.Sunk),
	))
}

func (gm gameMetrics) recordGameFinished(winner mb.Side) {
	if gm.gamesFinished == nil {
		return
	}
	gm.gamesFinished.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("winner", winner.String())))
}
