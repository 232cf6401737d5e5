package storefront

// AudioPlayer 音频播放器抽象，事件通过 Session.TimeUpdate / Session.Ended 回传
type AudioPlayer interface {
	Load(src string) error
	Play() error
	Pause()
	Seek(seconds float64)
	SetVolume(volume float64)
}

// Notifier 用户提示
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Navigator 跳转到结账页
type Navigator interface {
	Navigate(url string) error
}

// NopPlayer 无声播放器，用于终端前台
type NopPlayer struct{}

func (NopPlayer) Load(string) error {
	return nil
}

func (NopPlayer) Play() error {
	return nil
}

func (NopPlayer) Pause() {}

func (NopPlayer) Seek(float64) {}

func (NopPlayer) SetVolume(float64) {}

// NavigatorFunc 函数适配器
type NavigatorFunc func(url string) error

func (f NavigatorFunc) Navigate(url string) error {
	return f(url)
}
