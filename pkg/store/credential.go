package store

// CredentialKey は生成サービスのAPIキーを保存するキーです。
const CredentialKey = "gemini-api-key"

// CredentialStore は生成サービスの認証情報の読み書きを担当します。
// 履歴と同じ KeyValue を共有しますが、責務として分けてあるのだ。
type CredentialStore struct {
	kv KeyValue
}

// NewCredentialStore は CredentialStore を生成します。
func NewCredentialStore(kv KeyValue) *CredentialStore {
	return &CredentialStore{kv: kv}
}

// APIKey は保存済みのAPIキーを返します。未保存・読み込み失敗は空文字です。
func (c *CredentialStore) APIKey() string {
	value, ok, err := c.kv.Get(CredentialKey)
	if err != nil || !ok {
		return ""
	}
	return value
}

// SaveAPIKey はAPIキーを保存します。
func (c *CredentialStore) SaveAPIKey(key string) error {
	return c.kv.Set(CredentialKey, key)
}
