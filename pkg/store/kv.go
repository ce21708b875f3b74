package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// KeyValue はテキストのキーバリュー永続化の契約です。
// ブラウザ版の localStorage に相当する層で、コンストラクタで明示的に
// 注入します。アンビエントなグローバルには依存しないのだ。
type KeyValue interface {
	// Get はキーに対応する値を返します。キーが存在しない場合は ok=false です。
	Get(key string) (value string, ok bool, err error)
	// Set はキーに値を保存します。
	Set(key, value string) error
}

// FileKV は1つのJSONファイルを map[string]string として扱う KeyValue 実装です。
// 書き込みは一時ファイル + rename の原子的置換で行い、途中で失敗しても
// 元のファイルが壊れないようにしています。
type FileKV struct {
	path string
	mu   sync.Mutex
}

// NewFileKV は指定パスのファイルを使う FileKV を返します。
// ファイルは存在しなくてもよく、最初の Set で作られます。
func NewFileKV(path string) *FileKV {
	return &FileKV{path: path}
}

// Get はファイルを読み取ってキーの値を返します。
// ファイルが存在しない・壊れている場合はエラーにせず ok=false を返すのだ。
func (f *FileKV) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	m, err := f.read()
	if err != nil {
		return "", false, err
	}
	value, ok := m[key]
	return value, ok, nil
}

// Set はキーの値を更新してファイル全体を原子的に書き換えます。
func (f *FileKV) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	m, err := f.read()
	if err != nil {
		return err
	}
	m[key] = value
	return f.write(m)
}

func (f *FileKV) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("KVファイルの読み込みに失敗しました: %w", err)
	}

	m := map[string]string{}
	if err := json.Unmarshal(data, &m); err != nil {
		// 壊れたファイルは空として扱い、次の Set で上書きします
		return map[string]string{}, nil
	}
	return m, nil
}

func (f *FileKV) write(m map[string]string) error {
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("KVディレクトリの作成に失敗しました: %w", err)
		}
	}

	// map のJSONエンコードはキー順が安定なので、同じ内容なら同じバイト列になる
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("KVのシリアライズに失敗しました: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("KV一時ファイルの書き込みに失敗しました: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("KVファイルの置換に失敗しました: %w", err)
	}
	return nil
}

// MemoryKV はテストや使い捨てセッション向けのインメモリ実装なのだ。
type MemoryKV struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMemoryKV は空の MemoryKV を返します。
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: map[string]string{}}
}

func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.data[key]
	return value, ok, nil
}

func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
