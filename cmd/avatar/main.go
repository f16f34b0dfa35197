// Command avatar runs a keyboard-driven character: WASD moves and turns it, Shift sprints,
// Escape quits. The avatar idles until a movement key is held and cross-fades between its idle
// and walking clips on every state change.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/Carmen-Shannon/oxy-avatar/engine"
	"github.com/Carmen-Shannon/oxy-avatar/engine/camera"
	"github.com/Carmen-Shannon/oxy-avatar/engine/config"
	"github.com/Carmen-Shannon/oxy-avatar/engine/controller"
	"github.com/Carmen-Shannon/oxy-avatar/engine/crowd"
	"github.com/Carmen-Shannon/oxy-avatar/engine/game_object"
	"github.com/Carmen-Shannon/oxy-avatar/engine/input"
	"github.com/Carmen-Shannon/oxy-avatar/engine/loader"
	"github.com/Carmen-Shannon/oxy-avatar/engine/profiler"
	"github.com/Carmen-Shannon/oxy-avatar/engine/window"
	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

// extraSpacing is the distance between uncontrolled avatars along X.
const extraSpacing = 2

func init() {
	// GLFW must run on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file; defaults are used when empty")
	headless := flag.Bool("headless", false, "run without a window")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.WithError(err).WithField("path", *configPath).Fatal("failed to load config")
		}
	}
	if *headless {
		cfg.Window.Enabled = false
	}

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("avatar exited")
	}
}

func run(cfg *config.Config, log *logrus.Logger) error {
	if err := cfg.Logging.Apply(log); err != nil {
		return err
	}

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			Environment:      cfg.Sentry.Environment,
			AttachStacktrace: true,
		}); err != nil {
			return fmt.Errorf("failed to initialize sentry: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	if cfg.Statsview.Enabled {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(cfg.Statsview.Addr))
		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
		log.WithField("addr", cfg.Statsview.Addr).Info("statsview started")
	}

	bindings, err := cfg.KeyBindings()
	if err != nil {
		return err
	}
	sampler := input.NewSampler(input.WithBindings(bindings), input.WithLogger(log))

	body := game_object.NewGameObject(
		game_object.WithID(1),
		game_object.WithName(cfg.Avatar.Name),
		game_object.WithModel(cfg.Avatar.Model),
	)
	follow := camera.NewCameraController()
	cam := camera.NewCamera(
		camera.WithAspect(float32(cfg.Window.Width)/float32(cfg.Window.Height)),
		camera.WithController(follow),
	)

	avatarOptions := func(name string) []controller.ControllerBuilderOption {
		return []controller.ControllerBuilderOption{
			controller.WithName(name),
			controller.WithClipNames(cfg.Avatar.IdleClip, cfg.Avatar.WalkingClip),
			controller.WithBlendDuration(cfg.Avatar.Blend),
			controller.WithTunables(cfg.Tunables()),
			controller.WithLogger(log),
		}
	}

	hero := controller.NewController(append(avatarOptions(cfg.Avatar.Name),
		controller.WithSampler(sampler),
		controller.WithSink(body),
		controller.WithSink(follow),
		controller.WithTransitionHook(func(from, to string) {
			log.WithFields(logrus.Fields{"avatar": cfg.Avatar.Name, "from": from, "to": to}).Info("state changed")
		}),
	)...)

	group := crowd.NewCrowd(crowd.WithWorkers(cfg.Crowd.Workers), crowd.WithLogger(log))
	defer group.Close()
	if err := group.Add(hero); err != nil {
		return err
	}
	for i := 1; i <= cfg.Crowd.Extra; i++ {
		name := fmt.Sprintf("%s-%d", cfg.Avatar.Name, i)
		extra := controller.NewController(append(avatarOptions(name),
			controller.WithStartTransform(mgl32.Vec3{float32(i) * extraSpacing, 0, 0}, mgl32.QuatIdent()),
		)...)
		if err := group.Add(extra); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engineOptions := []engine.EngineBuilderOption{
		engine.WithLogger(log),
		engine.WithTickRate(float64(cfg.Engine.TickRate)),
		engine.WithProfiling(cfg.Engine.Profile),
		engine.WithProfiler(profiler.NewProfiler(
			profiler.WithLabel("avatar"),
			profiler.WithInterval(cfg.Engine.ProfileInterval),
			profiler.WithLogger(log),
		)),
	}
	if cfg.Window.Enabled {
		w, err := window.NewWindow(
			window.WithTitle(cfg.Window.Title),
			window.WithWidth(cfg.Window.Width),
			window.WithHeight(cfg.Window.Height),
		)
		if err != nil {
			return err
		}
		w.SetKeyDownCallback(sampler.PressKey)
		w.SetKeyUpCallback(sampler.ReleaseKey)
		w.SetFocusLostCallback(sampler.Reset)
		w.SetResizeCallback(func(width, height int) {
			if height > 0 {
				cam.SetAspect(float32(width) / float32(height))
			}
		})
		engineOptions = append(engineOptions, engine.WithWindow(w))
	} else {
		log.Info("running headless")
	}

	var sinceLog time.Duration
	engineOptions = append(engineOptions, engine.WithTickCallback(func(dt float32) {
		if err := group.Update(dt); err != nil {
			log.WithError(err).Warn("frame update failed")
		}
		cam.Update()

		if cfg.Engine.TransformLogInterval <= 0 || !hero.Ready() {
			return
		}
		sinceLog += time.Duration(float64(dt) * float64(time.Second))
		if sinceLog < cfg.Engine.TransformLogInterval {
			return
		}
		sinceLog = 0
		t := body.Transform()
		log.WithFields(logrus.Fields{
			"avatar":   cfg.Avatar.Name,
			"state":    hero.State(),
			"position": t.Position,
			"speed":    hero.Motion().Velocity.Z(),
			"camera":   follow.Position(),
		}).Debug("transform")
	}))
	eng := engine.NewEngine(engineOptions...)

	// every avatar loads the same model; one loader caches the parse
	clipLoader := loader.NewLoader(loader.WithLogger(log))
	source := loader.NewClipSourceFrom(clipLoader, cfg.Avatar.Model)

	loadErr := make(chan error, 1)
	go func() {
		for _, name := range group.Names() {
			ctrl, err := group.Get(name)
			if err != nil {
				continue
			}
			if err := ctrl.Load(ctx, source); err != nil {
				loadErr <- fmt.Errorf("failed to load %s: %w", name, err)
				sentry.CaptureException(err)
				eng.Quit()
				return
			}
		}
	}()

	go func() {
		<-ctx.Done()
		eng.Quit()
	}()

	eng.Run()
	stop()

	select {
	case err := <-loadErr:
		if !errors.Is(err, context.Canceled) {
			return err
		}
	default:
	}
	return nil
}
