package main

// Single-page operator board. Renders engine state pushed over the
// websocket and sends typed action messages back; all game rules live
// server-side.
const boardHTML = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Feudbox</title>
<style>
  body { font-family: system-ui, -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; margin: 2rem; background: #1a2744; color: #fff; }
  h1 { margin-bottom: 0.5rem; }
  #status { margin-bottom: 1rem; font-size: 0.9rem; color: #9fb3d9; }
  .board { display: grid; grid-template-columns: 1fr 1fr; gap: 0.5rem; max-width: 640px; }
  .answer { padding: 0.75rem 1rem; background: #274472; border-radius: 0.5rem; cursor: pointer; display: flex; justify-content: space-between; }
  .answer.revealed { background: #41729f; cursor: default; }
  .answer.hidden-slot { color: transparent; }
  .scores { display: flex; gap: 2rem; margin: 1rem 0; font-size: 1.25rem; }
  .scores .active { color: #ffd700; }
  .strikes { font-size: 2rem; color: #ff5252; letter-spacing: 0.5rem; min-height: 2.5rem; }
  button { margin: 0.2rem; padding: 0.5rem 1rem; border: 0; border-radius: 0.4rem; cursor: pointer; }
  #history li { font-size: 0.9rem; }
  #admin, #fastmoney { margin-top: 2rem; border-top: 1px solid #35507f; padding-top: 1rem; }
  input, textarea { padding: 0.4rem; border-radius: 0.3rem; border: 0; margin: 0.2rem; }
</style>
</head>
<body>
<h1 id="title">Feudbox</h1>
<div id="status">Connecting…</div>

<div class="scores">
  <div id="teamA">Team A: 0</div>
  <div id="teamB">Team B: 0</div>
  <div id="roundScore">Round: 0</div>
  <div id="phase"></div>
</div>
<div class="strikes" id="strikes"></div>

<h2 id="questionText"></h2>
<div class="board" id="answers"></div>

<div id="controls">
  <button onclick="send({type:'add_strike'})">Strike</button>
  <button onclick="send({type:'award_points',team:'A'})">Award A</button>
  <button onclick="send({type:'award_points',team:'B'})">Award B</button>
  <button onclick="send({type:'steal_points',team:'A'})">Steal A</button>
  <button onclick="send({type:'steal_points',team:'B'})">Steal B</button>
  <button onclick="send({type:'no_steal'})">No Steal</button>
  <button onclick="send({type:'switch_team'})">Switch Team</button>
  <button onclick="send({type:'next_question'})">Next Question</button>
  <button onclick="confirm('Reset current round?') && send({type:'reset_round'})">Reset Round</button>
  <button onclick="confirm('Reset entire game?') && send({type:'reset_game'})">Reset Game</button>
  <button onclick="send({type:'start_fast_money'})">Start Fast Money</button>
  <a id="qrLink" target="_blank"><button>QR</button></a>
</div>

<div id="fastmoney" style="display:none">
  <h2>Fast Money</h2>
  <div id="fmInfo"></div>
  <button id="fmStart" onclick="send({type:'fast_money_start_timer'})">Start Timer</button>
  <form onsubmit="submitFM(event)">
    <input id="fmAnswer" placeholder="Your answer..." autocomplete="off">
  </form>
  <button onclick="send({type:'fast_money_submit'})">Finish Early</button>
  <div id="fmHint" style="color:#ffd700"></div>
  <ul id="fmResults"></ul>
</div>

<h3>Round History</h3>
<ul id="history"></ul>

<div id="admin">
  <h2>Admin</h2>
  <form id="loginForm" onsubmit="adminLogin(event)">
    <input id="adminUser" placeholder="Username">
    <input id="adminPass" type="password" placeholder="Password">
    <button type="submit">Log in</button>
  </form>
  <div id="adminTools" style="display:none">
    <a id="exportRegular">Export regular CSV</a> |
    <a id="exportFastMoney">Export fast money CSV</a> |
    <a id="exportAll">Export combined CSV</a>
  </div>
</div>

<script>
(function() {
  const statusEl = document.getElementById('status');
  const sounds = {};

  const proto = (location.protocol === 'https:') ? 'wss://' : 'ws://';
  const base = location.pathname.replace(/\/$/, '');
  const ws = new WebSocket(proto + location.host + base + '/ws');

  // The page lives at /feud/:gameid with no trailing slash, so relative
  // hrefs would resolve one level up; build them from the full path.
  document.getElementById('qrLink').href = base + '/qr';
  document.getElementById('exportRegular').href = base + '/export/regular';
  document.getElementById('exportFastMoney').href = base + '/export/fast-money';
  document.getElementById('exportAll').href = base + '/export/all';

  window.send = function(msg) {
    ws.send(JSON.stringify(msg));
  };

  window.adminLogin = function(e) {
    e.preventDefault();
    send({
      type: 'admin_login',
      username: document.getElementById('adminUser').value,
      password: document.getElementById('adminPass').value
    });
  };

  window.submitFM = function(e) {
    e.preventDefault();
    const input = document.getElementById('fmAnswer');
    send({ type: 'fast_money_answer', answer: input.value });
    input.value = '';
  };

  function playSound(msg) {
    const prev = sounds[msg.channel];
    if (msg.op === 'pause') { if (prev) { prev.pause(); } return; }
    if (msg.op === 'resume') { if (prev) { prev.play().catch(() => {}); } return; }
    if (prev) { prev.pause(); delete sounds[msg.channel]; }
    if (msg.op === 'stop' || !msg.url) { return; }
    const el = (msg.kind === 'video') ? document.createElement('video') : new Audio();
    el.src = msg.url;
    el.volume = 0.8;
    sounds[msg.channel] = el;
    el.play().catch(() => {});
    el.addEventListener('ended', () => { if (sounds[msg.channel] === el) { delete sounds[msg.channel]; } });
  }

  function render(state, fm) {
    document.getElementById('title').textContent = state.gameSettings.title;
    document.getElementById('teamA').textContent = 'Team A: ' + state.teamAScore;
    document.getElementById('teamB').textContent = 'Team B: ' + state.teamBScore;
    document.getElementById('teamA').className = state.currentTeam === 'A' ? 'active' : '';
    document.getElementById('teamB').className = state.currentTeam === 'B' ? 'active' : '';
    document.getElementById('roundScore').textContent = 'Round: ' + state.roundScore;
    document.getElementById('phase').textContent = state.gamePhase;
    document.getElementById('strikes').textContent = 'X'.repeat(state.strikes);

    const q = state.questions[state.currentQuestionIndex];
    document.getElementById('questionText').textContent = q ? q.question : '';
    const answersEl = document.getElementById('answers');
    answersEl.innerHTML = '';
    if (q) {
      q.answers.forEach(function(a, i) {
        const div = document.createElement('div');
        div.className = 'answer' + (a.revealed ? ' revealed' : ' hidden-slot');
        div.textContent = (i + 1) + '. ' + a.text + ' -' + a.points;
        if (!a.revealed) {
          div.onclick = function() { send({ type: 'reveal_answer', index: i }); };
        }
        answersEl.appendChild(div);
      });
    }

    const historyEl = document.getElementById('history');
    historyEl.innerHTML = '';
    state.roundHistory.forEach(function(h) {
      const li = document.createElement('li');
      li.textContent = 'Round ' + h.round + ': Team ' + h.team + ' +' + h.points + ' (' + h.type + ')';
      historyEl.appendChild(li);
    });

    const fmEl = document.getElementById('fastmoney');
    const inFM = state.gamePhase === 'fast-money' || state.gamePhase === 'fast-money-player2' || state.gamePhase === 'game-complete';
    fmEl.style.display = inFM ? 'block' : 'none';
    if (fm) {
      document.getElementById('fmInfo').textContent =
        'Player ' + fm.player + ' -Team ' + state.winningTeam + ' -' + fm.timeLeft + 's' +
        (fm.timerRunning ? '' : ' (paused)') + ' -question ' + (fm.questionIndex + 1) + ' of 5';
      document.getElementById('fmHint').textContent =
        fm.duplicateAnswer ? 'Player 1 answered: "' + fm.duplicateAnswer + '" -try a different answer!' : '';
    }
    if (state.gamePhase === 'game-complete') {
      const won = state.fastMoneyScore >= 200;
      document.getElementById('fmInfo').textContent =
        'Total: ' + state.fastMoneyScore + ' / 200 -' + (won ? 'WINNER!' : 'No win this time.');
      const results = document.getElementById('fmResults');
      results.innerHTML = '';
      state.fastMoneyAnswers.player1.concat(state.fastMoneyAnswers.player2).forEach(function(r) {
        const li = document.createElement('li');
        li.textContent = r.question + ': "' + r.answer + '" -' + r.points + ' (' + r.correctAnswer + ')';
        results.appendChild(li);
      });
    }
  }

  ws.onopen = function() { statusEl.textContent = 'Connected.'; };

  ws.onmessage = function(event) {
    try {
      const msg = JSON.parse(event.data);
      if (msg.type === 'state') { render(msg.state, msg.fastMoney); return; }
      if (msg.type === 'sound') { playSound(msg); return; }
      if (msg.type === 'admin_result') {
        if (msg.ok) {
          document.getElementById('loginForm').style.display = 'none';
          document.getElementById('adminTools').style.display = 'block';
        } else {
          statusEl.textContent = 'Invalid username or password';
        }
        return;
      }
      if (msg.message) { statusEl.textContent = msg.message; }
    } catch (e) {
      console.error('bad message', e);
    }
  };

  ws.onclose = function() { statusEl.textContent = 'Disconnected.'; };
  ws.onerror = function() { statusEl.textContent = 'Error with WebSocket.'; };
})();
</script>
</body>
</html>
`
