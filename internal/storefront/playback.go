package storefront

// Play 播放或暂停：无试听地址时提示；当前曲目播放中则暂停，否则切换并播放
func (s *Session) Play(product Product) error {
	if !product.HasAudio() {
		s.notifier.Error("Audio not available for this beat")
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil && s.current.ID == product.ID && s.playback == PlaybackPlaying {
		s.player.Pause()
		s.playback = PlaybackPaused
		return nil
	}
	return s.startLocked(product)
}

// Skip 在可见列表中循环切换，目标无试听地址时保持不动
func (s *Session) Skip(direction SkipDirection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.skipLocked(direction)
}

// Ended 曲目自然结束后自动切到下一首
func (s *Session) Ended() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playback = PlaybackStopped
	s.position = 0
	return s.skipLocked(SkipNext)
}

// TimeUpdate 播放进度回调
func (s *Session) TimeUpdate(position, duration float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.position = position
	if duration > 0 {
		s.duration = duration
	}
}

// Seek 按比例跳转（0~1）
func (s *Session) Seek(fraction float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.duration <= 0 {
		return
	}
	s.position = clampUnit(fraction) * s.duration
	s.player.Seek(s.position)
}

// SetVolume 设置音量（0~1）
func (s *Session) SetVolume(volume float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volume = clampUnit(volume)
	s.player.SetVolume(s.volume)
}

// Volume 当前音量
func (s *Session) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}

// Playback 当前播放状态
func (s *Session) Playback() PlaybackState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playback
}

// Current 当前曲目
func (s *Session) Current() (Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Product{}, false
	}
	return *s.current, true
}

// Progress 当前进度与时长（秒）
func (s *Session) Progress() (position, duration float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position, s.duration
}

func (s *Session) skipLocked(direction SkipDirection) error {
	n := len(s.visible)
	if n == 0 {
		return nil
	}
	index := -1
	if s.current != nil {
		for i, p := range s.visible {
			if p.ID == s.current.ID {
				index = i
				break
			}
		}
	}
	var next int
	if direction == SkipPrev {
		next = index - 1
		if next < 0 {
			next = n - 1
		}
	} else {
		next = (index + 1) % n
	}
	target := s.visible[next]
	if !target.HasAudio() {
		return nil
	}
	return s.startLocked(target)
}

func (s *Session) startLocked(product Product) error {
	if s.current == nil || s.current.ID != product.ID {
		if err := s.player.Load(product.AudioURL); err != nil {
			return err
		}
		p := product
		s.current = &p
		s.position = 0
		s.duration = 0
	}
	if err := s.player.Play(); err != nil {
		s.playback = PlaybackStopped
		return err
	}
	s.playback = PlaybackPlaying
	return nil
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
