package notify

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"

	"desktoptoast/internal/activation"
	"desktoptoast/internal/shortcut"
	"desktoptoast/internal/storage"
	"desktoptoast/internal/toast"
)

var myHandlerID = uuid.MustParse("7956e95c-d42e-413b-9c8e-c173e6adf0c7")

type myHandler struct {
	activation.Base
	calls []activation.Activation
}

func (h *myHandler) CLSID() uuid.UUID { return myHandlerID }

func (h *myHandler) OnActivated(_ context.Context, a activation.Activation) {
	h.calls = append(h.calls, a)
}

type staticProbe struct {
	packaged bool
	calls    int
}

func (p *staticProbe) IsPackaged() bool {
	p.calls++
	return p.packaged
}

type countingInstaller struct {
	shortcut.FileInstaller
	calls int
	err   error
}

func (c *countingInstaller) Install(path, exePath, identity string, clsid uuid.UUID) error {
	c.calls++
	if c.err != nil {
		return c.err
	}
	return c.FileInstaller.Install(path, exePath, identity, clsid)
}

type ManagerSuite struct {
	suite.Suite
	ctx       context.Context
	appData   string
	probe     *staticProbe
	keys      *activation.MemoryKeys
	registrar *activation.Registrar
	installer *countingInstaller
	journal   *storage.Journal
	manager   *Manager
	handler   *myHandler
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerSuite))
}

func (s *ManagerSuite) SetupTest() {
	s.ctx = context.Background()
	s.appData = s.T().TempDir()
	s.Require().NoError(os.MkdirAll(filepath.Join(s.appData, "Microsoft", "Windows", "Start Menu", "Programs"), 0755))

	journal, err := storage.Open(filepath.Join(s.T().TempDir(), "history.db"), zerolog.Nop())
	s.Require().NoError(err)
	s.journal = journal

	s.probe = &staticProbe{}
	s.keys = activation.NewMemoryKeys()
	s.registrar = activation.NewRegistrar(s.keys, zerolog.Nop())
	s.installer = &countingInstaller{}
	s.handler = &myHandler{}
	s.manager = s.newManager()
}

func (s *ManagerSuite) TearDownTest() {
	s.NoError(s.journal.Close())
}

func (s *ManagerSuite) newManager() *Manager {
	return NewManager(Deps{
		Probe:     s.probe,
		Shortcuts: s.installer,
		Registrar: s.registrar,
		Platform:  s.journal,
		AppData:   s.appData,
		ExePath:   `C:\apps\contoso.exe`,
		Log:       zerolog.Nop(),
	})
}

func (s *ManagerSuite) options() Options {
	return Options{
		Identity:    "Contoso.App",
		DisplayName: "Contoso",
		Logo:        "logo.png",
		Handler:     s.handler,
	}
}

func (s *ManagerSuite) programsEntries() []os.DirEntry {
	entries, err := os.ReadDir(filepath.Join(s.appData, "Microsoft", "Windows", "Start Menu", "Programs"))
	s.Require().NoError(err)
	return entries
}

func (s *ManagerSuite) assertNoSideEffects() {
	s.Zero(s.installer.calls)
	s.Empty(s.programsEntries())
	s.Zero(s.keys.Len())
	s.False(s.manager.Registered())
}

func (s *ManagerSuite) TestRegisterUnpackagedScenario() {
	s.Require().NoError(s.manager.Register(s.ctx, s.options()))

	s.True(s.manager.Registered())
	id, ok := s.manager.Identity()
	s.True(ok)
	s.Equal("Contoso.App", id)

	path := s.manager.ShortcutPath("Contoso")
	s.Equal(filepath.Join(s.appData, "Microsoft", "Windows", "Start Menu", "Programs", "Contoso.lnk"), path)
	link, err := shortcut.Read(path)
	s.Require().NoError(err)
	s.Equal("Contoso.App", link.AppUserModelID)
	s.Equal(myHandlerID, link.ToastActivatorCLSID)
	s.Equal(`C:\apps\contoso.exe`, link.Target)

	v, err := s.keys.GetString(activation.ServerKeyPath(myHandlerID), "")
	s.Require().NoError(err)
	s.Equal(`"C:\apps\contoso.exe" -ToastActivated`, v)
	s.Regexp(` -ToastActivated$`, v)

	v, err = s.keys.GetString(`Software\Classes\contoso.app\shell\open\command`, "")
	s.Require().NoError(err)
	s.Equal(`"C:\apps\contoso.exe" -ToastActivated "%1"`, v)

	h, ok := s.registrar.Factory(myHandlerID)
	s.True(ok)
	s.Same(s.handler, h)
}

func (s *ManagerSuite) TestRegisterIsIdempotent() {
	s.Require().NoError(s.manager.Register(s.ctx, s.options()))
	first, err := os.ReadFile(s.manager.ShortcutPath("Contoso"))
	s.Require().NoError(err)
	keys := s.keys.Len()

	s.Require().NoError(s.manager.Register(s.ctx, s.options()))
	second, err := os.ReadFile(s.manager.ShortcutPath("Contoso"))
	s.Require().NoError(err)

	s.Equal(first, second)
	s.Equal(keys, s.keys.Len())
	s.Len(s.programsEntries(), 1)
	s.True(s.manager.Registered())
	id, _ := s.manager.Identity()
	s.Equal("Contoso.App", id)
}

func (s *ManagerSuite) TestRegisterRejectsBaseHandler() {
	opts := s.options()
	opts.Handler = activation.Base{}

	err := s.manager.Register(s.ctx, opts)
	s.ErrorIs(err, ErrInvalidArgument)
	s.ErrorIs(err, activation.ErrInvalidHandler)

	err = s.manager.CreateShortcutAndRegister("Contoso", "Contoso.App", activation.Base{})
	s.ErrorIs(err, ErrInvalidArgument)
	s.ErrorIs(err, activation.ErrInvalidHandler)

	s.ErrorIs(s.manager.Register(s.ctx, Options{Identity: "a", DisplayName: "b", Logo: "c"}), activation.ErrInvalidHandler)

	s.assertNoSideEffects()
}

func (s *ManagerSuite) TestRegisterRejectsBlankArguments() {
	blanks := []string{"", "   ", "\t\n"}
	mutators := map[string]func(*Options, string){
		"identity":     func(o *Options, v string) { o.Identity = v },
		"display name": func(o *Options, v string) { o.DisplayName = v },
		"logo":         func(o *Options, v string) { o.Logo = v },
	}
	for name, mutate := range mutators {
		for _, blank := range blanks {
			opts := s.options()
			mutate(&opts, blank)

			err := s.manager.Register(s.ctx, opts)
			s.ErrorIs(err, ErrInvalidArgument, "%s=%q", name, blank)
		}
	}

	s.ErrorIs(s.manager.CreateShortcutAndRegister(" ", "Contoso.App", s.handler), ErrInvalidArgument)
	s.ErrorIs(s.manager.CreateShortcutAndRegister("Contoso", "", s.handler), ErrInvalidArgument)

	s.assertNoSideEffects()
}

func (s *ManagerSuite) TestLogoBackgroundColor() {
	for _, c := range []string{"red", "#FF00", "#GG0063B1", "FF0063B1"} {
		opts := s.options()
		opts.LogoBackgroundColor = c
		s.ErrorIs(s.manager.Register(s.ctx, opts), ErrInvalidArgument, c)
	}
	s.assertNoSideEffects()

	for _, c := range []string{"", "transparent", "Transparent", "#FF0063B1"} {
		opts := s.options()
		opts.LogoBackgroundColor = c
		s.NoError(s.manager.Register(s.ctx, opts), c)
	}
}

func (s *ManagerSuite) TestRegisterPackaged() {
	s.probe.packaged = true

	s.Require().NoError(s.manager.Register(s.ctx, s.options()))

	s.True(s.manager.Registered())
	_, ok := s.manager.Identity()
	s.False(ok)
	s.Zero(s.installer.calls)
	s.Empty(s.programsEntries())
	s.Zero(s.keys.Len())
	s.False(s.manager.MustRegisterWithPlatform())
}

func (s *ManagerSuite) TestRegisterPackagedBindsActivator() {
	s.probe.packaged = true
	s.Require().NoError(s.manager.Register(s.ctx, s.options()))

	a := activation.Activation{Arguments: "action=like&conversationId=5"}
	s.Require().NoError(s.registrar.Dispatch(s.ctx, myHandlerID, a))
	s.Equal([]activation.Activation{a}, s.handler.calls)
	s.Zero(s.keys.Len())
}

func (s *ManagerSuite) TestRegisterPackagedCanceledContext() {
	s.probe.packaged = true
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	s.ErrorIs(s.manager.Register(ctx, s.options()), context.Canceled)
	s.False(s.manager.Registered())
	_, ok := s.registrar.Factory(myHandlerID)
	s.False(ok)
}

func (s *ManagerSuite) TestFailedReregistrationKeepsPreviousIdentity() {
	s.Require().NoError(s.manager.Register(s.ctx, s.options()))

	s.installer.err = errors.New("boom")
	opts := s.options()
	opts.Identity = "Fabrikam.Other"
	opts.DisplayName = "Fabrikam"
	s.Require().Error(s.manager.Register(s.ctx, opts))

	id, ok := s.manager.Identity()
	s.True(ok)
	s.Equal("Contoso.App", id)

	n, err := s.manager.CreateNotifier()
	s.Require().NoError(err)
	s.Equal("Contoso.App", n.Identity())
	s.Require().NoError(n.Show(toast.Notification{Title: "hi", Arguments: "a=1"}))

	records, err := s.journal.List("Contoso.App")
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal("contoso.app:a=1", records[0].Arguments)
}

func (s *ManagerSuite) TestRegisterPackagedStillValidates() {
	s.probe.packaged = true
	opts := s.options()
	opts.Logo = ""

	s.ErrorIs(s.manager.Register(s.ctx, opts), ErrInvalidArgument)
	s.False(s.manager.Registered())
}

func (s *ManagerSuite) TestUnregisteredUsageErrors() {
	s.True(s.manager.MustRegisterWithPlatform())

	_, err := s.manager.CreateNotifier()
	s.ErrorIs(err, ErrNotRegistered)

	_, err = s.manager.History()
	s.ErrorIs(err, ErrNotRegistered)
}

func (s *ManagerSuite) TestPackagedIsImplicitlyRegistered() {
	s.probe.packaged = true

	n, err := s.manager.CreateNotifier()
	s.Require().NoError(err)
	s.Empty(n.Identity())

	_, err = s.manager.History()
	s.Require().NoError(err)
	s.True(s.manager.Registered())
}

func (s *ManagerSuite) TestShortcutFailureLeavesUnregistered() {
	boom := errors.New("shell link unavailable")
	s.installer.err = boom

	err := s.manager.Register(s.ctx, s.options())
	s.ErrorIs(err, boom)
	s.False(s.manager.Registered())
	s.Zero(s.keys.Len())

	_, err = s.manager.CreateNotifier()
	s.ErrorIs(err, ErrNotRegistered)

	// 再次注册会修复之前的半成品状态
	s.installer.err = nil
	s.Require().NoError(s.manager.Register(s.ctx, s.options()))
	s.True(s.manager.Registered())
}

func (s *ManagerSuite) TestMissingProgramsDirectoryFails() {
	s.Require().NoError(os.RemoveAll(filepath.Join(s.appData, "Microsoft")))

	err := s.manager.Register(s.ctx, s.options())
	s.ErrorIs(err, os.ErrNotExist)
	s.False(s.manager.Registered())
}

func (s *ManagerSuite) TestRegisterCanceledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	s.ErrorIs(s.manager.Register(ctx, s.options()), context.Canceled)
	s.assertNoSideEffects()
}

func (s *ManagerSuite) TestNotifierPrefixesActivationScheme() {
	s.Require().NoError(s.manager.Register(s.ctx, s.options()))

	n, err := s.manager.CreateNotifier()
	s.Require().NoError(err)
	s.Equal("Contoso.App", n.Identity())

	s.Require().NoError(n.Show(toast.Notification{
		Title:     "Andrew sent you a picture",
		Arguments: "action=viewConversation&conversationId=5",
		Actions:   []toast.Action{{Label: "Like", Arguments: "action=like&conversationId=5"}},
		Tag:       "msg",
		Group:     "chat",
	}))

	records, err := s.journal.List("Contoso.App")
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal("contoso.app:action=viewConversation&conversationId=5", records[0].Arguments)
}

func (s *ManagerSuite) TestHistoryRoundTrip() {
	s.Require().NoError(s.manager.Register(s.ctx, s.options()))
	n, err := s.manager.CreateNotifier()
	s.Require().NoError(err)
	history, err := s.manager.History()
	s.Require().NoError(err)

	for _, t := range []toast.Notification{
		{Title: "1", Tag: "a", Group: "chat"},
		{Title: "2", Tag: "b", Group: "chat"},
		{Title: "3", Tag: "c", Group: "mail"},
		{Title: "4", Tag: "d"},
	} {
		s.Require().NoError(n.Show(t))
	}

	// 其他应用的通知不受影响
	s.Require().NoError(s.journal.Show("Fabrikam.App", toast.Notification{Tag: "a", Group: "chat"}))

	s.Require().NoError(history.Remove("missing"))
	s.Require().NoError(history.Remove("d"))
	s.Equal([]string{"a", "b", "c"}, recordTags(s.list(history)))

	s.Require().NoError(history.RemoveWithGroup("a", "chat"))
	s.Equal([]string{"b", "c"}, recordTags(s.list(history)))

	s.Require().NoError(history.RemoveGroup("chat"))
	s.Equal([]string{"c"}, recordTags(s.list(history)))

	s.Require().NoError(history.Clear())
	s.Empty(s.list(history))

	others, err := s.journal.List("Fabrikam.App")
	s.Require().NoError(err)
	s.Len(others, 1)
}

func (s *ManagerSuite) TestRegisterComServerAndActivator() {
	s.Require().NoError(s.manager.RegisterComServerAndActivator(s.handler, `D:\custom.exe`))

	v, err := s.keys.GetString(activation.ServerKeyPath(myHandlerID), "")
	s.Require().NoError(err)
	s.Equal(`"D:\custom.exe" -ToastActivated`, v)

	s.Require().NoError(s.manager.RegisterComServerAndActivator(s.handler, ""))
	v, err = s.keys.GetString(activation.ServerKeyPath(myHandlerID), "")
	s.Require().NoError(err)
	s.Equal(`"C:\apps\contoso.exe" -ToastActivated`, v)

	s.Require().NoError(s.registrar.Dispatch(s.ctx, myHandlerID, activation.Activation{Arguments: "action=like"}))
	s.Len(s.handler.calls, 1)
	s.False(s.manager.Registered())
}

func (s *ManagerSuite) TestCreateShortcutAndRegisterKeepsState() {
	s.Require().NoError(s.manager.CreateShortcutAndRegister("Contoso", "Contoso.App", s.handler))

	s.FileExists(s.manager.ShortcutPath("Contoso"))
	s.False(s.manager.Registered())
	_, err := s.manager.CreateNotifier()
	s.ErrorIs(err, ErrNotRegistered)
}

func (s *ManagerSuite) list(h *History) []toast.Record {
	records, err := h.List()
	s.Require().NoError(err)
	return records
}

func recordTags(records []toast.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Tag)
	}
	return out
}
