package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	assistantinadapter "lifeos/internal/modules/assistant/adapter/in"
	assistantoutadapter "lifeos/internal/modules/assistant/adapter/out"
	assistantin "lifeos/internal/modules/assistant/port/in"
	assistantservice "lifeos/internal/modules/assistant/service"
	assistantusecase "lifeos/internal/modules/assistant/usecase"
	boardinadapter "lifeos/internal/modules/board/adapter/in"
	boardoutadapter "lifeos/internal/modules/board/adapter/out"
	boardin "lifeos/internal/modules/board/port/in"
	boardservice "lifeos/internal/modules/board/service"
	boardusecase "lifeos/internal/modules/board/usecase"
	feedbackinadapter "lifeos/internal/modules/feedback/adapter/in"
	feedbackoutadapter "lifeos/internal/modules/feedback/adapter/out"
	feedbackin "lifeos/internal/modules/feedback/port/in"
	feedbackout "lifeos/internal/modules/feedback/port/out"
	feedbackservice "lifeos/internal/modules/feedback/service"
	feedbackusecase "lifeos/internal/modules/feedback/usecase"
	hostinadapter "lifeos/internal/modules/host/adapter/in"
	hostoutadapter "lifeos/internal/modules/host/adapter/out"
	hostdomain "lifeos/internal/modules/host/domain"
	hostdto "lifeos/internal/modules/host/dto"
	hostin "lifeos/internal/modules/host/port/in"
	hostservice "lifeos/internal/modules/host/service"
	hostusecase "lifeos/internal/modules/host/usecase"
	imaginginadapter "lifeos/internal/modules/imaging/adapter/in"
	imagingoutadapter "lifeos/internal/modules/imaging/adapter/out"
	imagingin "lifeos/internal/modules/imaging/port/in"
	imagingservice "lifeos/internal/modules/imaging/service"
	imagingusecase "lifeos/internal/modules/imaging/usecase"
	opsinadapter "lifeos/internal/modules/ops/adapter/in"
	opsoutadapter "lifeos/internal/modules/ops/adapter/out"
	opsin "lifeos/internal/modules/ops/port/in"
	opsservice "lifeos/internal/modules/ops/service"
	opsusecase "lifeos/internal/modules/ops/usecase"
	shopinadapter "lifeos/internal/modules/shop/adapter/in"
	shopoutadapter "lifeos/internal/modules/shop/adapter/out"
	shopin "lifeos/internal/modules/shop/port/in"
	shopservice "lifeos/internal/modules/shop/service"
	shopusecase "lifeos/internal/modules/shop/usecase"
	systeminadapter "lifeos/internal/modules/system/adapter/in"
	systemoutadapter "lifeos/internal/modules/system/adapter/out"
	systemin "lifeos/internal/modules/system/port/in"
	systemservice "lifeos/internal/modules/system/service"
	systemusecase "lifeos/internal/modules/system/usecase"
	"lifeos/internal/platform/clock"
	"lifeos/internal/platform/config"
	"lifeos/internal/platform/httpapi"
	"lifeos/internal/platform/i18n"
	"lifeos/internal/platform/id"
	"lifeos/internal/platform/logging"
	"lifeos/internal/platform/markdown"
	"lifeos/internal/platform/prefs"
	uiapp "lifeos/internal/ui/app"
	"lifeos/internal/ui/theme"
	focusview "lifeos/internal/ui/views/focus"
	shopview "lifeos/internal/ui/views/shop"
)

// EnvInitData carries the host launch payload when no flag is given.
const EnvInitData = "LIFEOS_TG_INIT_DATA"

// Options are the command-line layers applied on top of config files.
type Options struct {
	ConfigPath string
	APIBase    string
	LogLevel   string
	InitData   string
	// TUI sends logs to the log file instead of stderr.
	TUI bool
}

type App struct {
	Config config.Config
	Logger *zap.Logger
	Lang   i18n.Lang

	BoardCLI     boardinadapter.CLIHandler
	ShopCLI      shopinadapter.CLIHandler
	AssistantCLI assistantinadapter.CLIHandler
	ImagingCLI   imaginginadapter.CLIHandler
	SystemCLI    systeminadapter.CLIHandler
	OpsCLI       opsinadapter.CLIHandler
	FeedbackCLI  feedbackinadapter.CLIHandler
	HostCLI      hostinadapter.CLIHandler

	prefs     *prefs.Store
	catalog   *shopoutadapter.ConfigCatalog
	surface   *hostoutadapter.KeySurface
	board     boardin.Usecase
	shop      shopin.Usecase
	assistant assistantin.Usecase
	imaging   imagingin.Usecase
	system    systemin.Usecase
	ops       opsin.Usecase
	feedback  feedbackin.Usecase
	host      hostin.Usecase
}

func New(opts Options) (*App, error) {
	cfg, err := config.Load(config.LoadOptions{
		ConfigPath: opts.ConfigPath,
		APIBase:    opts.APIBase,
		LogLevel:   opts.LogLevel,
	})
	if err != nil {
		return nil, err
	}

	var logger *zap.Logger
	if opts.TUI {
		logger, err = logging.NewFile(cfg.Log, cfg.LogPath())
	} else {
		logger, err = logging.New(cfg.Log)
	}
	if err != nil {
		return nil, err
	}

	rawInit := opts.InitData
	if rawInit == "" {
		rawInit = os.Getenv(EnvInitData)
	}
	hostCtx, err := hostdomain.ParseInitData(rawInit)
	if err != nil {
		return nil, fmt.Errorf("init data: %w", err)
	}

	store, err := prefs.Open(cfg.PrefsPath())
	if err != nil {
		return nil, err
	}
	lang, themeName := resolveLook(store, hostCtx, logger)
	theme.Use(themeName)

	client := httpapi.New(cfg.API, logger)
	clk := clock.SystemClock{}

	assistantUC := assistantusecase.NewInteractor(assistantservice.NewAssistantService(
		assistantoutadapter.NewHTTPGateway(client),
	))

	boardGateway := boardoutadapter.NewHTTPGateway(client)
	boardUC := boardusecase.NewInteractor(boardservice.NewSyncService(boardservice.Deps{
		Niches:          boardGateway,
		Tasks:           boardGateway,
		Profiles:        boardGateway,
		Assistant:       boardoutadapter.NewAssistantBridge(assistantUC),
		Clock:           clk,
		IDs:             id.UUID{},
		Logger:          logger,
		FallbackNicheID: cfg.Defaults.FallbackNicheID,
	}))

	catalog := shopoutadapter.NewConfigCatalog(cfg.Shop)
	shopUC := shopusecase.NewInteractor(shopservice.NewShopService(
		catalog,
		shopoutadapter.NewBoardWallet(boardUC),
		logger,
	))

	files := imagingoutadapter.NewLocalFiles()
	imagingUC := imagingusecase.NewInteractor(imagingservice.NewImagingService(
		files,
		imagingoutadapter.NewHTTPTransformer(client),
		files,
	))

	systemUC := systemusecase.NewInteractor(systemservice.NewSystemService(
		systemoutadapter.NewHTTPGateway(client, cfg.API.HealthPath),
		logger,
	))

	opsUC := opsusecase.NewInteractor(opsservice.NewOpsService(opsoutadapter.NewHTTPGateway(client), clk))

	var player feedbackout.Player = feedbackoutadapter.NewBellPlayer(os.Stderr)
	if cfg.Audio.Player != "" {
		player = feedbackoutadapter.NewCommandPlayer(cfg.Audio.Player)
	}
	feedbackUC := feedbackusecase.NewInteractor(feedbackservice.NewFeedbackService(feedbackservice.Deps{
		Transcriber:  feedbackoutadapter.NewCommandTranscriber(cfg.Speech.Command),
		Player:       player,
		Vibrator:     feedbackoutadapter.NopVibrator{},
		AudioEnabled: cfg.Audio.Enabled,
		Logger:       logger,
	}))

	surface := hostoutadapter.NewKeySurface()
	hostUC := hostusecase.NewInteractor(hostservice.NewHostService(hostCtx, surface))

	return &App{
		Config: cfg,
		Logger: logger,
		Lang:   lang,

		BoardCLI:     boardinadapter.NewCLIHandler(boardUC),
		ShopCLI:      shopinadapter.NewCLIHandler(shopUC),
		AssistantCLI: assistantinadapter.NewCLIHandler(assistantUC, markdown.NewRenderer(theme.Markdown(), 80)),
		ImagingCLI:   imaginginadapter.NewCLIHandler(imagingUC),
		SystemCLI:    systeminadapter.NewCLIHandler(systemUC),
		OpsCLI:       opsinadapter.NewCLIHandler(opsUC),
		FeedbackCLI:  feedbackinadapter.NewCLIHandler(feedbackUC),
		HostCLI:      hostinadapter.NewCLIHandler(hostUC),

		prefs:     store,
		catalog:   catalog,
		surface:   surface,
		board:     boardUC,
		shop:      shopUC,
		assistant: assistantUC,
		imaging:   imagingUC,
		system:    systemUC,
		ops:       opsUC,
		feedback:  feedbackUC,
		host:      hostUC,
	}, nil
}

// resolveLook picks language and theme. Stored preferences win; otherwise
// the locale and the host color scheme decide.
func resolveLook(store *prefs.Store, host hostdomain.Context, logger *zap.Logger) (i18n.Lang, string) {
	ctx := context.Background()
	lang := i18n.Resolve(os.Getenv("LANG"))
	if stored, err := store.Get(ctx, prefs.KeyLanguage, ""); err != nil {
		logger.Warn("read language pref", zap.Error(err))
	} else if parsed, ok := i18n.Parse(stored); ok {
		lang = parsed
	}

	themeName := theme.Dark
	if host.ColorScheme == hostdomain.SchemeLight {
		themeName = theme.Light
	}
	if stored, err := store.Get(ctx, prefs.KeyTheme, ""); err != nil {
		logger.Warn("read theme pref", zap.Error(err))
	} else if stored == prefs.ThemeLight || stored == prefs.ThemeDark {
		themeName = stored
	}
	return lang, themeName
}

// Poller runs the background quiet refresh used by `lifeos watch`.
func (a *App) Poller(onTick func(error)) *boardusecase.Poller {
	return boardusecase.NewPoller(a.board, a.Config.Refresh.Interval, a.Logger, onTick)
}

func (a *App) Close() error {
	_ = a.Logger.Sync()
	return a.prefs.Close()
}

func RunTUI(ctx context.Context, app *App) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	chatID, _ := app.HostCLI.ChatID()
	model := uiapp.NewModel(ctx, uiapp.Deps{
		Board:           app.board,
		Shop:            app.shop,
		Assistant:       app.assistant,
		Imaging:         app.imaging,
		Ops:             app.ops,
		System:          app.system,
		Feedback:        app.feedback,
		Prefs:           app.prefs,
		Host:            app.surface,
		Lang:            app.Lang,
		HostChatID:      chatID,
		RefreshInterval: app.Config.Refresh.Interval,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	// Handlers fire from inside Update, so sends must not block on the
	// program loop.
	release := app.host.Bind(hostdto.Handlers{
		MainLabel: app.Lang.T("host.main"),
		Main:      func() { go program.Send(focusview.AddTaskMsg{}) },
		Back:      func() { go program.Send(uiapp.BackMsg{}) },
	})
	defer release()

	if app.Config.Path != "" {
		go func() {
			err := config.Watch(ctx, app.Config.Path, func(cfg config.Config) {
				app.catalog.Reload(cfg.Shop)
				app.Logger.Info("shop catalog reloaded", zap.String("path", app.Config.Path))
				program.Send(shopview.CatalogReloadedMsg{})
			}, func(err error) {
				app.Logger.Warn("config reload", zap.Error(err))
			})
			if err != nil {
				app.Logger.Warn("config watch", zap.Error(err))
			}
		}()
	}

	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
