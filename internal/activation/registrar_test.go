package activation

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
)

type recordingHandler struct {
	Base
	id    uuid.UUID
	calls []Activation
}

func (h *recordingHandler) CLSID() uuid.UUID { return h.id }

func (h *recordingHandler) OnActivated(_ context.Context, a Activation) {
	h.calls = append(h.calls, a)
}

type failingKeys struct{ err error }

func (f failingKeys) SetString(string, string, string) error { return f.err }
func (f failingKeys) GetString(string, string) (string, error) { return "", f.err }

type RegistrarSuite struct {
	suite.Suite
	keys    *MemoryKeys
	reg     *Registrar
	handler *recordingHandler
}

func TestRegistrarSuite(t *testing.T) {
	suite.Run(t, new(RegistrarSuite))
}

func (s *RegistrarSuite) SetupTest() {
	s.keys = NewMemoryKeys()
	s.reg = NewRegistrar(s.keys, zerolog.Nop())
	s.handler = &recordingHandler{id: uuid.MustParse("7956e95c-d42e-413b-9c8e-c173e6adf0c7")}
}

func (s *RegistrarSuite) TestRegisterComServerWritesLocalServer32() {
	s.Require().NoError(s.reg.RegisterComServer(s.handler, `C:\apps\contoso.exe`))

	v, err := s.keys.GetString(`Software\Classes\CLSID\{7956E95C-D42E-413B-9C8E-C173E6ADF0C7}\LocalServer32`, "")
	s.Require().NoError(err)
	s.Equal(`"C:\apps\contoso.exe" -ToastActivated`, v)
}

func (s *RegistrarSuite) TestRegisterComServerIsIdempotent() {
	s.Require().NoError(s.reg.RegisterComServer(s.handler, `C:\old.exe`))
	s.Require().NoError(s.reg.RegisterComServer(s.handler, `C:\new.exe`))
	s.Require().NoError(s.reg.RegisterComServer(s.handler, `C:\new.exe`))

	v, err := s.keys.GetString(ServerKeyPath(s.handler.id), "")
	s.Require().NoError(err)
	s.Equal(`"C:\new.exe" -ToastActivated`, v)
	s.Equal(1, s.keys.Len())
}

func (s *RegistrarSuite) TestRejectsBaseHandler() {
	s.ErrorIs(s.reg.RegisterComServer(Base{}, `C:\a.exe`), ErrInvalidHandler)
	s.ErrorIs(s.reg.RegisterClassFactory(Base{}), ErrInvalidHandler)
	s.Zero(s.keys.Len())
}

func (s *RegistrarSuite) TestRejectsEmptyExePath() {
	s.Error(s.reg.RegisterComServer(s.handler, "  "))
	s.Zero(s.keys.Len())
}

func (s *RegistrarSuite) TestClassFactoryRequiresServer() {
	err := s.reg.RegisterClassFactory(s.handler)
	s.ErrorIs(err, ErrServerNotRegistered)

	_, ok := s.reg.Factory(s.handler.id)
	s.False(ok)

	s.Require().NoError(s.reg.RegisterComServer(s.handler, `C:\a.exe`))
	s.Require().NoError(s.reg.RegisterClassFactory(s.handler))

	h, ok := s.reg.Factory(s.handler.id)
	s.True(ok)
	s.Same(s.handler, h)
}

func (s *RegistrarSuite) TestRegistryFailuresPropagate() {
	boom := errors.New("access denied")
	reg := NewRegistrar(failingKeys{err: boom}, zerolog.Nop())

	s.ErrorIs(reg.RegisterComServer(s.handler, `C:\a.exe`), boom)
	s.ErrorIs(reg.RegisterClassFactory(s.handler), boom)
	s.ErrorIs(reg.RegisterProtocol("contoso.app", "Contoso", `C:\a.exe`), boom)
}

func (s *RegistrarSuite) TestRegisterProtocol() {
	s.Require().NoError(s.reg.RegisterProtocol("contoso.app", "Contoso", `C:\a.exe`))

	v, err := s.keys.GetString(`Software\Classes\contoso.app`, "")
	s.Require().NoError(err)
	s.Equal("URL:Contoso", v)

	v, err = s.keys.GetString(`Software\Classes\contoso.app`, "URL Protocol")
	s.Require().NoError(err)
	s.Empty(v)

	v, err = s.keys.GetString(`Software\Classes\contoso.app\shell\open\command`, "")
	s.Require().NoError(err)
	s.Equal(`"C:\a.exe" -ToastActivated "%1"`, v)
}

func (s *RegistrarSuite) TestDispatch() {
	ctx := context.Background()
	a := Activation{Arguments: "action=like"}

	s.ErrorIs(s.reg.Dispatch(ctx, s.handler.id, a), ErrNoFactory)

	s.Require().NoError(s.reg.RegisterComServer(s.handler, `C:\a.exe`))
	s.Require().NoError(s.reg.RegisterClassFactory(s.handler))
	s.Require().NoError(s.reg.Dispatch(ctx, s.handler.id, a))

	s.Equal([]Activation{a}, s.handler.calls)
	s.ErrorIs(s.reg.Dispatch(ctx, uuid.New(), a), ErrNoFactory)
}

func (s *RegistrarSuite) TestBindSkipsRegistry() {
	s.ErrorIs(s.reg.Bind(Base{}), ErrInvalidHandler)

	s.Require().NoError(s.reg.Bind(s.handler))
	s.Zero(s.keys.Len())

	a := Activation{Arguments: "action=reply"}
	s.Require().NoError(s.reg.Dispatch(context.Background(), s.handler.id, a))
	s.Equal([]Activation{a}, s.handler.calls)
}
