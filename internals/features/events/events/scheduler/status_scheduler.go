package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/adhocore/gronx"

	"eventos_backend/internals/features/events/events/service"
)

// StartStatusScheduler dispara el motor de estados según la expresión cron
// configurada (default: cada minuto). El dashboard ya no ejecuta el motor;
// este scheduler es el único invocador.
func StartStatusScheduler(engine *service.StatusEngine, cronExpr string) {
	gron := gronx.New()
	if !gron.IsValid(cronExpr) {
		log.Printf("[SCHEDULER] cron %q inválido, se usa '* * * * *'", cronExpr)
		cronExpr = "* * * * *"
	}

	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()

		for now := range ticker.C {
			due, err := gron.IsDue(cronExpr, now)
			if err != nil || !due {
				continue
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			result, err := engine.AdvanceStatuses(ctx, now)
			cancel()

			if err != nil {
				log.Printf("[SCHEDULER] error al actualizar estados: %v", err)
				continue
			}
			if result.Activated > 0 || result.Finished > 0 || result.Failed > 0 {
				log.Printf("[SCHEDULER] estados actualizados: %d activados, %d finalizados, %d fallidos",
					result.Activated, result.Finished, result.Failed)
			}
		}
	}()
}
