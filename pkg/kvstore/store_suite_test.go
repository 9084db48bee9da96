package kvstore

import (
	"fmt"
	"time"

	"github.com/fystack/typed-storage/pkg/infra"
	"github.com/stretchr/testify/suite"
)

// StoreTestSuite checks the infra.KVStore contract against any backend.
type StoreTestSuite struct {
	suite.Suite
	open  func() (infra.KVStore, error)
	store infra.KVStore
	keys  []string
}

func newStoreSuite(open func() (infra.KVStore, error)) *StoreTestSuite {
	return &StoreTestSuite{open: open}
}

func testPrefix() string {
	return fmt.Sprintf("test-%d", time.Now().UnixNano())
}

func (s *StoreTestSuite) SetupTest() {
	store, err := s.open()
	s.Require().NoError(err)
	s.store = store
	s.keys = nil
}

func (s *StoreTestSuite) TearDownTest() {
	if s.store == nil {
		return
	}
	for _, k := range s.keys {
		_ = s.store.Remove(k)
	}
	s.NoError(s.store.Close())
}

func (s *StoreTestSuite) set(key string, value []byte) {
	s.Require().NoError(s.store.SetBytes(key, value))
	s.keys = append(s.keys, key)
}

func (s *StoreTestSuite) TestSetAndGet() {
	s.set("theme", []byte(`"dark"`))

	got, err := s.store.GetBytes("theme")
	s.Require().NoError(err)
	s.Equal(`"dark"`, string(got))
}

func (s *StoreTestSuite) TestOverwrite() {
	s.set("theme", []byte(`"dark"`))
	s.set("theme", []byte(`"light"`))

	got, err := s.store.GetBytes("theme")
	s.Require().NoError(err)
	s.Equal(`"light"`, string(got))
}

func (s *StoreTestSuite) TestGetMissingKey() {
	_, err := s.store.GetBytes("does-not-exist")
	s.ErrorIs(err, ErrKeyNotFound)
}

func (s *StoreTestSuite) TestRemove() {
	s.set("theme", []byte(`"dark"`))

	s.Require().NoError(s.store.Remove("theme"))
	_, err := s.store.GetBytes("theme")
	s.ErrorIs(err, ErrKeyNotFound)
}

func (s *StoreTestSuite) TestRemoveMissingKey() {
	s.NoError(s.store.Remove("never-set"))
}

func (s *StoreTestSuite) TestEmptyKey() {
	_, err := s.store.GetBytes("")
	s.ErrorIs(err, ErrKeyEmpty)
	s.ErrorIs(s.store.SetBytes("", []byte("x")), ErrKeyEmpty)
	s.ErrorIs(s.store.Remove(""), ErrKeyEmpty)
}

func (s *StoreTestSuite) TestEmptyValue() {
	s.set("empty", []byte{})

	got, err := s.store.GetBytes("empty")
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *StoreTestSuite) TestList() {
	s.set("prefs/a", []byte("1"))
	s.set("prefs/b", []byte("2"))
	s.set("other/c", []byte("3"))

	pairs, err := s.store.List("prefs/")
	s.Require().NoError(err)

	got := make(map[string]string, len(pairs))
	for _, p := range pairs {
		got[p.Key] = string(p.Value)
	}
	s.Equal(map[string]string{"prefs/a": "1", "prefs/b": "2"}, got)
}

func (s *StoreTestSuite) TestListEmptyPrefix() {
	_, err := s.store.List("")
	s.ErrorIs(err, ErrPrefixEmpty)
}

func (s *StoreTestSuite) TestGetName() {
	s.NotEmpty(s.store.GetName())
}
