package constants

// 商品类型常量
const (
	ProductTypeSimple   = "simple"
	ProductTypeVariable = "variable"
)

// 商品状态常量
const (
	ProductStatusPublish = "publish"
	ProductStatusDraft   = "draft"
	ProductStatusPrivate = "private"
)

// 商品元数据键（音乐属性）
const (
	MetaGenre    = "genre"
	MetaBPM      = "bpm"
	MetaMood     = "mood"
	MetaKey      = "key"
	MetaAudioURL = "audio_url"
)

// 规格属性前缀（平台全局属性）
const AttributeTaxonomyPrefix = "pa_"

// 目录数据源
const (
	CatalogSourceDatabase    = "database"
	CatalogSourceWooCommerce = "woocommerce"
)

// 原生购物车实现
const (
	NativeCartDatabase = "database"
	NativeCartLink     = "link"
)

// 目录默认值
const (
	DefaultPerPage    = 50
	DefaultMaxPerPage = 100
	DefaultBPMMin     = 60
	DefaultBPMMax     = 200
)

// 访问角色
const (
	RoleVisitor  = "visitor"
	RoleEmbedded = "embedded"
)

// 队列与任务
const (
	QueueDefault        = "default"
	TaskCheckoutCreated = "storefront:checkout_created"
)

// 嵌入与接口默认值
const (
	DefaultAPINamespace     = "/wp-json/rarebeats/v1"
	DefaultNonceAudience    = "wp_rest"
	DefaultNonceHeader      = "X-WP-Nonce"
	DefaultEmbedHeight      = "800px"
	DefaultMountRetryMillis = 500
)
